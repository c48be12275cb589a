package handler

import (
	"time"

	"vorsorge/internal/erasure"
)

// PurgeOutcome reports one collection's purge in the erasure report.
type PurgeOutcome struct {
	Collection string `json:"collection"`
	Deleted    int    `json:"deleted"`
	Error      string `json:"error,omitempty"`
}

// ReportResponse is the HTTP payload for DELETE /v1/account. It is returned
// for completed and partially failed runs alike; Stage tells them apart.
type ReportResponse struct {
	UserID            string         `json:"user_id"`
	Stage             string         `json:"stage"`
	IdentityDeleted   bool           `json:"identity_deleted"`
	Purged            []PurgeOutcome `json:"purged"`
	FailedCollections []string       `json:"failed_collections,omitempty"`
	StartedAt         time.Time      `json:"started_at"`
	FinishedAt        time.Time      `json:"finished_at"`
}

// FromReport converts a domain erasure report to its HTTP representation.
func FromReport(report *erasure.Report) *ReportResponse {
	resp := &ReportResponse{
		UserID:          report.UserID.String(),
		Stage:           string(report.Stage),
		IdentityDeleted: report.IdentityDeleted,
		Purged:          make([]PurgeOutcome, 0, len(report.Purged)),
		StartedAt:       report.StartedAt,
		FinishedAt:      report.FinishedAt,
	}
	for _, p := range report.Purged {
		outcome := PurgeOutcome{
			Collection: string(p.Collection),
			Deleted:    p.Deleted,
		}
		if p.Err != nil {
			outcome.Error = p.Err.Error()
		}
		resp.Purged = append(resp.Purged, outcome)
	}
	for _, c := range report.FailedCollections() {
		resp.FailedCollections = append(resp.FailedCollections, string(c))
	}
	return resp
}
