package models

// Pipeline stages for a deal. The order matters for board rendering; any
// stage may move to any other stage, there is no reverse-transition guard.
const (
	StageNew         = "New"
	StageProposal    = "Proposal"
	StageNegotiation = "Negotiation"
	StageWon         = "Won"
	StageLost        = "Lost"
)

// Stages returns the pipeline stages in board order.
func Stages() []string {
	return []string{StageNew, StageProposal, StageNegotiation, StageWon, StageLost}
}

// ValidStage reports whether s is a recognized pipeline stage.
func ValidStage(s string) bool {
	switch s {
	case StageNew, StageProposal, StageNegotiation, StageWon, StageLost:
		return true
	}
	return false
}
