package appointment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Repository defines the interface for appointment data access. All status
// mutations are conditional on the expected pre-state so concurrent or
// replayed transitions silently no-op instead of clobbering each other.
type Repository interface {
	// Create creates a new appointment record
	Create(ctx context.Context, appt Appointment) (Appointment, error)

	// GetByID retrieves an appointment by id
	GetByID(ctx context.Context, id string) (Appointment, error)

	// ListOverdueScheduled lists scheduled appointments whose scheduled_at is
	// older than the given cutoff (sweep input)
	ListOverdueScheduled(ctx context.Context, before time.Time) ([]Appointment, error)

	// ListByCandidateAndStatus lists a candidate's appointments in one status
	ListByCandidateAndStatus(ctx context.Context, candidateID string, status Status) ([]Appointment, error)

	// ListByCandidate lists all of a candidate's appointments, newest first
	ListByCandidate(ctx context.Context, candidateID string) ([]Appointment, error)

	// ListBlockingByBranchAndRange lists non-cancelled appointments for a
	// branch whose interval intersects [from, to) (availability input)
	ListBlockingByBranchAndRange(ctx context.Context, branchID string, from, to time.Time) ([]Appointment, error)

	// MarkLapsed transitions scheduled → lapsed, stamping lapsed_at once.
	// Returns false when the appointment already left scheduled.
	MarkLapsed(ctx context.Context, id string, at time.Time) (bool, error)

	// MarkResolved transitions from one of the expected statuses to resolved,
	// stamping resolved_at/resolved_by/resolved_reason once. Returns false
	// when the appointment was no longer in an expected status.
	MarkResolved(ctx context.Context, id string, at time.Time, by, reason string, expected []Status) (bool, error)

	// MarkCancelled transitions scheduled → cancelled, stamping cancelled_at
	// and cancelled_reason once. Returns false when already left scheduled.
	MarkCancelled(ctx context.Context, id string, at time.Time, reason string) (bool, error)

	// ResolveLapsedTo transitions lapsed → completed/cancelled/no_show with
	// the operator's verdict. Returns false when the appointment already left
	// lapsed.
	ResolveLapsedTo(ctx context.Context, id string, status Status, at time.Time, by string, notes *string) (bool, error)

	// Reschedule transitions lapsed → scheduled at a new time, preserving the
	// prior time in rescheduled_from. Returns false when already left lapsed.
	Reschedule(ctx context.Context, id string, newAt, previousAt time.Time, by string) (bool, error)

	// ListPendingFeedbackReminders lists completed interviews finished before
	// the cutoff that have not had a feedback reminder emitted yet
	ListPendingFeedbackReminders(ctx context.Context, completedBefore time.Time) ([]Appointment, error)

	// MarkFeedbackReminderSent flips the reminder flag exactly once. Returns
	// false when the flag was already set.
	MarkFeedbackReminderSent(ctx context.Context, id string) (bool, error)

	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx pgx.Tx) Repository
}
