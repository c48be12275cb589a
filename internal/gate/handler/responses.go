package handler

import (
	"time"

	"vorsorge/internal/gate"
)

// EvaluateResponse is the HTTP response for POST /v1/gate/evaluate.
type EvaluateResponse struct {
	Outcome         string    `json:"outcome"`
	Reason          string    `json:"reason"`
	MissingConsents []string  `json:"missing_consents,omitempty"`
	EvaluatedAt     time.Time `json:"evaluated_at"`
}

// FromDecision converts a gate decision to its HTTP shape.
func FromDecision(decision gate.Decision) *EvaluateResponse {
	resp := &EvaluateResponse{
		Outcome:     string(decision.Outcome),
		Reason:      string(decision.Reason),
		EvaluatedAt: decision.EvaluatedAt,
	}
	for _, c := range decision.MissingConsents {
		resp.MissingConsents = append(resp.MissingConsents, c.String())
	}
	return resp
}
