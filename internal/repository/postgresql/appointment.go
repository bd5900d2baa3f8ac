package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/database"
)

const appointmentColumns = `
	id, candidate_id, candidate_name, branch_id, type, scheduled_at, duration_minutes,
	status, lapsed_at, resolved_at, resolved_by, resolved_reason, cancelled_at,
	cancelled_reason, rescheduled_from, feedback_reminder_sent, created_at, updated_at
`

type appointmentRepositoryImpl struct {
	db *database.DB
	q  database.Querier
}

// NewAppointmentRepository creates a new appointment repository instance
func NewAppointmentRepository(db *database.DB) appointment.Repository {
	return &appointmentRepositoryImpl{db: db}
}

func (r *appointmentRepositoryImpl) querier() database.Querier {
	if r.q != nil {
		return r.q
	}
	return r.db.Pool
}

// WithTx implements appointment.Repository.
func (r *appointmentRepositoryImpl) WithTx(tx pgx.Tx) appointment.Repository {
	return &appointmentRepositoryImpl{db: r.db, q: tx}
}

// Create implements appointment.Repository.
func (r *appointmentRepositoryImpl) Create(ctx context.Context, appt appointment.Appointment) (appointment.Appointment, error) {
	query := `
		INSERT INTO appointments (
			id, candidate_id, candidate_name, branch_id, type, scheduled_at,
			duration_minutes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + appointmentColumns

	row := r.querier().QueryRow(ctx, query,
		appt.ID, appt.CandidateID, appt.CandidateName, appt.BranchID, appt.Type,
		appt.ScheduledAt, appt.DurationMinutes, appt.Status, appt.CreatedAt,
	)

	created, err := scanAppointment(row)
	if err != nil {
		return appointment.Appointment{}, fmt.Errorf("failed to create appointment: %w", err)
	}

	return created, nil
}

// GetByID implements appointment.Repository.
func (r *appointmentRepositoryImpl) GetByID(ctx context.Context, id string) (appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appt, err := scanAppointment(r.querier().QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return appointment.Appointment{}, appointment.ErrAppointmentNotFound
		}
		return appointment.Appointment{}, fmt.Errorf("failed to get appointment: %w", err)
	}

	return appt, nil
}

// ListOverdueScheduled implements appointment.Repository.
func (r *appointmentRepositoryImpl) ListOverdueScheduled(ctx context.Context, before time.Time) ([]appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status = 'scheduled' AND scheduled_at < $1
		ORDER BY scheduled_at ASC
	`
	return r.list(ctx, query, before)
}

// ListByCandidateAndStatus implements appointment.Repository.
func (r *appointmentRepositoryImpl) ListByCandidateAndStatus(ctx context.Context, candidateID string, status appointment.Status) ([]appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE candidate_id = $1 AND status = $2
		ORDER BY scheduled_at ASC
	`
	return r.list(ctx, query, candidateID, status)
}

// ListByCandidate implements appointment.Repository.
func (r *appointmentRepositoryImpl) ListByCandidate(ctx context.Context, candidateID string) ([]appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE candidate_id = $1
		ORDER BY scheduled_at DESC
	`
	return r.list(ctx, query, candidateID)
}

// ListBlockingByBranchAndRange implements appointment.Repository.
func (r *appointmentRepositoryImpl) ListBlockingByBranchAndRange(ctx context.Context, branchID string, from, to time.Time) ([]appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE branch_id = $1
		  AND status != 'cancelled'
		  AND scheduled_at < $3
		  AND scheduled_at + (duration_minutes * INTERVAL '1 minute') > $2
		ORDER BY scheduled_at ASC
	`
	return r.list(ctx, query, branchID, from, to)
}

// MarkLapsed implements appointment.Repository.
func (r *appointmentRepositoryImpl) MarkLapsed(ctx context.Context, id string, at time.Time) (bool, error) {
	query := `
		UPDATE appointments
		SET status = 'lapsed', lapsed_at = $2, updated_at = $2
		WHERE id = $1 AND status = 'scheduled'
	`
	return r.conditionalUpdate(ctx, "failed to mark appointment lapsed", query, id, at)
}

// MarkResolved implements appointment.Repository.
func (r *appointmentRepositoryImpl) MarkResolved(ctx context.Context, id string, at time.Time, by, reason string, expected []appointment.Status) (bool, error) {
	query := `
		UPDATE appointments
		SET status = 'resolved', resolved_at = $2, resolved_by = $3, resolved_reason = $4, updated_at = $2
		WHERE id = $1 AND status = ANY($5)
	`

	states := make([]string, 0, len(expected))
	for _, st := range expected {
		states = append(states, string(st))
	}

	return r.conditionalUpdate(ctx, "failed to resolve appointment", query, id, at, by, reason, states)
}

// MarkCancelled implements appointment.Repository.
func (r *appointmentRepositoryImpl) MarkCancelled(ctx context.Context, id string, at time.Time, reason string) (bool, error) {
	query := `
		UPDATE appointments
		SET status = 'cancelled', cancelled_at = $2, cancelled_reason = $3, updated_at = $2
		WHERE id = $1 AND status = 'scheduled'
	`
	return r.conditionalUpdate(ctx, "failed to cancel appointment", query, id, at, reason)
}

// ResolveLapsedTo implements appointment.Repository.
func (r *appointmentRepositoryImpl) ResolveLapsedTo(ctx context.Context, id string, status appointment.Status, at time.Time, by string, notes *string) (bool, error) {
	query := `
		UPDATE appointments
		SET status = $2, resolved_at = $3, resolved_by = $4, resolved_reason = $5, updated_at = $3
		WHERE id = $1 AND status = 'lapsed'
	`
	return r.conditionalUpdate(ctx, "failed to resolve lapsed appointment", query, id, status, at, by, notes)
}

// Reschedule implements appointment.Repository.
func (r *appointmentRepositoryImpl) Reschedule(ctx context.Context, id string, newAt, previousAt time.Time, by string) (bool, error) {
	query := `
		UPDATE appointments
		SET status = 'scheduled', scheduled_at = $2, rescheduled_from = $3,
			resolved_by = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'lapsed'
	`
	return r.conditionalUpdate(ctx, "failed to reschedule appointment", query, id, newAt, previousAt, by)
}

// ListPendingFeedbackReminders implements appointment.Repository.
func (r *appointmentRepositoryImpl) ListPendingFeedbackReminders(ctx context.Context, completedBefore time.Time) ([]appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE type = 'interview'
		  AND status = 'completed'
		  AND feedback_reminder_sent = FALSE
		  AND scheduled_at + (duration_minutes * INTERVAL '1 minute') < $1
		ORDER BY scheduled_at ASC
	`
	return r.list(ctx, query, completedBefore)
}

// MarkFeedbackReminderSent implements appointment.Repository.
func (r *appointmentRepositoryImpl) MarkFeedbackReminderSent(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE appointments
		SET feedback_reminder_sent = TRUE, updated_at = NOW()
		WHERE id = $1 AND feedback_reminder_sent = FALSE
	`
	return r.conditionalUpdate(ctx, "failed to mark feedback reminder sent", query, id)
}

func (r *appointmentRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]appointment.Appointment, error) {
	rows, err := r.querier().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appts []appointment.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appts, nil
}

func (r *appointmentRepositoryImpl) conditionalUpdate(ctx context.Context, msg, query string, args ...interface{}) (bool, error) {
	tag, err := r.querier().Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", msg, err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanAppointment(row pgx.Row) (appointment.Appointment, error) {
	var appt appointment.Appointment
	err := row.Scan(
		&appt.ID, &appt.CandidateID, &appt.CandidateName, &appt.BranchID, &appt.Type,
		&appt.ScheduledAt, &appt.DurationMinutes, &appt.Status, &appt.LapsedAt,
		&appt.ResolvedAt, &appt.ResolvedBy, &appt.ResolvedReason, &appt.CancelledAt,
		&appt.CancelledReason, &appt.RescheduledFrom, &appt.FeedbackReminderSent,
		&appt.CreatedAt, &appt.UpdatedAt,
	)
	return appt, err
}
