package notify

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Webhook posts deal-won alerts to a configured URL. Best effort: failures
// are logged and never affect the triggering request.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

type dealWonPayload struct {
	Message    string  `json:"message"`
	DealID     uint    `json:"dealId"`
	DealTitle  string  `json:"dealTitle"`
	ClientName string  `json:"clientName"`
	JobID      uint    `json:"jobId"`
	Value      float64 `json:"value"`
}

// DealWon announces that a deal closed and a job was created. No-op when no
// URL is configured.
func (w *Webhook) DealWon(dealID uint, title, clientName string, jobID uint, value float64) {
	if w == nil || w.URL == "" {
		return
	}
	body, _ := json.Marshal(dealWonPayload{
		Message:    "Deal won! New job created",
		DealID:     dealID,
		DealTitle:  title,
		ClientName: clientName,
		JobID:      jobID,
		Value:      value,
	})

	resp, err := w.Client.Post(w.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		slog.Error("deal-won webhook failed", "error", err, "dealId", dealID)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		slog.Warn("deal-won webhook rejected", "status", resp.StatusCode, "dealId", dealID)
	}
}
