package erasure

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"vorsorge/internal/platform/metrics"
	id "vorsorge/pkg/domain"
	dErrors "vorsorge/pkg/domain-errors"
	"vorsorge/pkg/platform/audit"
	"vorsorge/pkg/platform/sentinel"
	"vorsorge/pkg/requestcontext"
)

// Purger deletes every record of one owned collection for a user. This is
// the record store collaborator narrowed to what erasure needs.
type Purger interface {
	Purge(ctx context.Context, collection Collection, userID id.UserID) (int, error)
}

// IdentityDeleter removes the identity record at the hosted identity
// service. Deleting the identity is the final, irreversible step.
type IdentityDeleter interface {
	DeleteIdentity(ctx context.Context, userID id.UserID) error
}

// Locker serializes erasure runs per user. Acquire returns
// sentinel.ErrConflict while another run holds the lock.
type Locker interface {
	Acquire(ctx context.Context, userID id.UserID) (release func(), err error)
}

// Service runs the erasure state machine.
type Service struct {
	purger   Purger
	identity IdentityDeleter
	locker   Locker
	audits   audit.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

func NewService(
	purger Purger,
	identity IdentityDeleter,
	locker Locker,
	audits audit.Store,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		purger:   purger,
		identity: identity,
		locker:   locker,
		audits:   audits,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("vorsorge/internal/erasure"),
	}
}

// EraseAccount purges every owned collection for the user and then deletes
// the identity record. The caller must already be authenticated as the
// target user; there is no cross-user erasure.
//
// Concurrent runs for the same user are rejected with CodeConflict. Once the
// lock is held the run detaches from caller cancellation: there is no safe
// cancellation point after the purge begins.
//
// A non-nil *PartialFailureError is returned (alongside the report) when the
// run ends in StagePartiallyFailed.
func (s *Service) EraseAccount(ctx context.Context, userID id.UserID) (*Report, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}

	release, err := s.locker.Acquire(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an erasure for this account is already in progress")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to acquire erasure lock")
	}
	defer release()

	requestID := requestcontext.RequestID(ctx)
	startedAt := requestcontext.Now(ctx)

	// Detach from caller cancellation: a half-purged account must never be
	// left behind because the client hung up.
	ctx = context.WithoutCancel(ctx)

	ctx, span := s.tracer.Start(ctx, "erasure.run",
		trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()

	report := &Report{
		UserID:    userID,
		Stage:     StageRequested,
		StartedAt: startedAt,
	}

	s.appendAudit(ctx, audit.Event{
		Timestamp: startedAt,
		UserID:    userID,
		Action:    audit.ActionErasureRequested,
		RequestID: requestID,
	})
	s.logger.InfoContext(ctx, "account erasure started",
		"request_id", requestID,
		"user_id", userID,
	)

	report.Stage = StagePurgingOwnedData
	report.Purged = s.purgeOwnedData(ctx, userID, requestID)

	report.Stage = StageDeletingIdentity
	if err := s.deleteIdentity(ctx, userID); err != nil {
		// Owned data may already be gone while the account can still log
		// in. This is the one failure that must be escalated loudly.
		report.Stage = StagePartiallyFailed
		report.FinishedAt = time.Now().UTC()
		s.finishRun(ctx, report, audit.Event{
			Timestamp: report.FinishedAt,
			UserID:    userID,
			Action:    audit.ActionErasurePartialFailed,
			Subject:   string(StageDeletingIdentity),
			Reason:    err.Error(),
			RequestID: requestID,
		})
		span.SetStatus(codes.Error, "identity deletion failed")
		return report, &PartialFailureError{Stage: StageDeletingIdentity, Cause: err}
	}
	report.IdentityDeleted = true

	if failed := report.FailedCollections(); len(failed) > 0 {
		report.Stage = StagePartiallyFailed
		report.FinishedAt = time.Now().UTC()
		cause := s.joinPurgeErrors(report)
		s.finishRun(ctx, report, audit.Event{
			Timestamp: report.FinishedAt,
			UserID:    userID,
			Action:    audit.ActionErasurePartialFailed,
			Subject:   string(StagePurgingOwnedData),
			Reason:    cause.Error(),
			RequestID: requestID,
		})
		span.SetStatus(codes.Error, "owned-data purge incomplete")
		return report, &PartialFailureError{Stage: StagePurgingOwnedData, Cause: cause}
	}

	report.Stage = StageCompleted
	report.FinishedAt = time.Now().UTC()
	s.finishRun(ctx, report, audit.Event{
		Timestamp: report.FinishedAt,
		UserID:    userID,
		Action:    audit.ActionErasureCompleted,
		RequestID: requestID,
	})
	return report, nil
}

// purgeOwnedData purges every owned collection concurrently. Every purge is
// attempted; per-collection failures are collected, never short-circuited,
// so identity deletion is always reached with a complete purge picture.
func (s *Service) purgeOwnedData(ctx context.Context, userID id.UserID, requestID string) []PurgeResult {
	ctx, span := s.tracer.Start(ctx, "erasure.purge_owned_data")
	defer span.End()

	collections := OwnedCollections()
	results := make([]PurgeResult, len(collections))

	g, gctx := errgroup.WithContext(ctx)
	for i, collection := range collections {
		g.Go(func() error {
			deleted, err := s.purger.Purge(gctx, collection, userID)
			results[i] = PurgeResult{Collection: collection, Deleted: deleted, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.Err == nil {
			continue
		}
		s.logger.ErrorContext(ctx, "owned-data purge failed",
			"request_id", requestID,
			"user_id", userID,
			"collection", r.Collection,
			"error", r.Err,
		)
		s.appendAudit(ctx, audit.Event{
			Timestamp: time.Now().UTC(),
			UserID:    userID,
			Action:    audit.ActionErasurePurgeFailed,
			Subject:   string(r.Collection),
			Reason:    r.Err.Error(),
			RequestID: requestID,
		})
	}
	return results
}

func (s *Service) deleteIdentity(ctx context.Context, userID id.UserID) error {
	ctx, span := s.tracer.Start(ctx, "erasure.delete_identity")
	defer span.End()

	err := s.identity.DeleteIdentity(ctx, userID)
	if err != nil && errors.Is(err, sentinel.ErrNotFound) {
		// Already gone, e.g. a retry after a run that failed post-deletion.
		return nil
	}
	return err
}

func (s *Service) finishRun(ctx context.Context, report *Report, event audit.Event) {
	s.appendAudit(ctx, event)
	if s.metrics != nil {
		s.metrics.IncrementErasureRun(string(report.Stage))
	}
	s.logger.InfoContext(ctx, "account erasure finished",
		"request_id", event.RequestID,
		"user_id", report.UserID,
		"stage", report.Stage,
		"identity_deleted", report.IdentityDeleted,
		"failed_collections", len(report.FailedCollections()),
		"duration_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	)
}

func (s *Service) appendAudit(ctx context.Context, event audit.Event) {
	if err := s.audits.Append(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to append erasure audit event",
			"user_id", event.UserID,
			"action", event.Action,
			"error", err,
		)
	}
}

func (s *Service) joinPurgeErrors(report *Report) error {
	var errs []error
	for _, p := range report.Purged {
		if p.Err != nil {
			errs = append(errs, p.Err)
		}
	}
	return errors.Join(errs...)
}
