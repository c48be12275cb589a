// Package erasure orchestrates irreversible account deletion: purge every
// owned-data collection, then delete the identity record. There is no
// rollback; ordering and explicit failure reporting are the contract.
package erasure

import (
	"fmt"
	"time"

	id "vorsorge/pkg/domain"
)

// Stage is a state in the erasure state machine.
//
//	Requested → PurgingOwnedData → DeletingIdentity → Completed
//
// PartiallyFailed is terminal and reachable from PurgingOwnedData (some
// owned data remains after the identity is gone) or DeletingIdentity (owned
// data is gone but the account can still log in — the worst case).
type Stage string

const (
	StageRequested        Stage = "requested"
	StagePurgingOwnedData Stage = "purging_owned_data"
	StageDeletingIdentity Stage = "deleting_identity"
	StageCompleted        Stage = "completed"
	StagePartiallyFailed  Stage = "partially_failed"
)

// Collection names one owned-data table purged during erasure.
type Collection string

const (
	CollectionPensionPlans         Collection = "pension_plans"
	CollectionScenarioInputs       Collection = "scenario_inputs"
	CollectionCalculationSnapshots Collection = "calculation_snapshots"
	CollectionConsentRecords       Collection = "consent_records"
	CollectionUserPreferences      Collection = "user_preferences"
)

// OwnedCollections returns the fixed set of collections every erasure run
// purges. Audit events are deliberately absent: the compliance trail outlives
// the account.
func OwnedCollections() []Collection {
	return []Collection{
		CollectionPensionPlans,
		CollectionScenarioInputs,
		CollectionCalculationSnapshots,
		CollectionConsentRecords,
		CollectionUserPreferences,
	}
}

// PurgeResult records the outcome of one collection purge.
type PurgeResult struct {
	Collection Collection
	Deleted    int
	Err        error
}

// Report is the full outcome of one erasure run.
type Report struct {
	UserID          id.UserID
	Stage           Stage
	Purged          []PurgeResult
	IdentityDeleted bool
	StartedAt       time.Time
	FinishedAt      time.Time
}

// FailedCollections returns the collections whose purge failed.
func (r *Report) FailedCollections() []Collection {
	var failed []Collection
	for _, p := range r.Purged {
		if p.Err != nil {
			failed = append(failed, p.Collection)
		}
	}
	return failed
}

// PartialFailureError reports a run that ended in StagePartiallyFailed. It
// carries the stage that failed so callers can distinguish leftover owned
// data (retryable) from a surviving identity (needs escalation).
type PartialFailureError struct {
	Stage Stage
	Cause error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("erasure partially failed at %s: %v", e.Stage, e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}
