package handler

import (
	"time"

	consentModel "vorsorge/internal/consent/models"
	id "vorsorge/pkg/domain"
)

// ConsentResponse is one ledger entry as returned to the client.
type ConsentResponse struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	DocumentVersion string    `json:"document_version"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// RecordConsentsResponse is the HTTP response for POST /v1/consents.
type RecordConsentsResponse struct {
	Recorded []ConsentResponse `json:"recorded"`
}

// ListConsentsResponse is the HTTP response for GET /v1/consents.
type ListConsentsResponse struct {
	Consents []ConsentResponse `json:"consents"`
}

// StatusResponse is the HTTP response for GET /v1/consents/status. It reports
// satisfaction against the active legal document version so clients know
// whether to show the re-consent dialog.
type StatusResponse struct {
	DocumentVersion string   `json:"document_version"`
	Satisfied       bool     `json:"satisfied"`
	Missing         []string `json:"missing,omitempty"`
}

// FromRecords converts ledger entries to their HTTP shape.
func FromRecords(records []*consentModel.ConsentRecord) []ConsentResponse {
	out := make([]ConsentResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ConsentResponse{
			ID:              r.ID.String(),
			Category:        r.Category.String(),
			DocumentVersion: r.DocumentVersion.String(),
			RecordedAt:      r.RecordedAt,
		})
	}
	return out
}

// FromStatus converts a satisfaction check result to its HTTP shape.
func FromStatus(version id.DocumentVersion, satisfied bool, missing []id.ConsentCategory) *StatusResponse {
	resp := &StatusResponse{
		DocumentVersion: version.String(),
		Satisfied:       satisfied,
	}
	for _, c := range missing {
		resp.Missing = append(resp.Missing, c.String())
	}
	return resp
}
