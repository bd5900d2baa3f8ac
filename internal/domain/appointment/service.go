package appointment

import (
	"context"

	"github.com/flowhire/scheduling-backend-go/internal/pkg/events"
)

// Service defines the interface for the appointment lifecycle
type Service interface {
	// GetByID retrieves a single appointment
	GetByID(ctx context.Context, id string) (DetailResponse, error)

	// ListByCandidate lists a candidate's appointments
	ListByCandidate(ctx context.Context, candidateID string) ([]DetailResponse, error)

	// SweepOverdue advances scheduled appointments older than the grace
	// window to lapsed, or straight to resolved when the candidate's outcome
	// is already known. Safe to re-run; a failure on one appointment does not
	// abort the batch.
	SweepOverdue(ctx context.Context) error

	// HandleCandidateStatusChanged reacts to a candidate status change:
	// auto-resolve statuses resolve that candidate's lapsed appointments,
	// withdrawn/rejected cancel the ones still scheduled. No-op when the
	// status did not actually change.
	HandleCandidateStatusChanged(ctx context.Context, ev events.CandidateStatusChanged)

	// ResolveLapsed applies an operator's verdict to a lapsed appointment
	ResolveLapsed(ctx context.Context, req ResolveRequest) (ResolveResponse, error)

	// SendFeedbackReminders emits a reminder fact for completed interviews
	// that have none yet
	SendFeedbackReminders(ctx context.Context) error
}
