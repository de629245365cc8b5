package deals

type createDealDTO struct {
	ClientID     uint    `json:"clientId"`
	Title        string  `json:"title"`
	Value        float64 `json:"value"`
	CostInternal float64 `json:"costInternal"`
	CostExternal float64 `json:"costExternal"`
	Stage        string  `json:"stage"`
	IsRecurring  bool    `json:"isRecurring"`
	Notes        string  `json:"notes"`
}

type moveStageDTO struct {
	Stage string `json:"stage"`
}

// dealResponse adds the derived profit to the stored fields.
type dealResponse struct {
	Deal
	Profit float64 `json:"profit"`
}

func toResponse(d Deal) dealResponse {
	return dealResponse{Deal: d, Profit: d.Profit()}
}

func toResponses(list []Deal) []dealResponse {
	out := make([]dealResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toResponse(d))
	}
	return out
}
