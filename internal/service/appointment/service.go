package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	"github.com/flowhire/scheduling-backend-go/internal/domain/candidate"
	"github.com/flowhire/scheduling-backend-go/internal/domain/notification"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/events"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/metrics"
)

const feedbackReminderDelay = 24 * time.Hour

type service struct {
	apptRepo      domain.Repository
	candidateRepo candidate.Repository
	notifier      notification.Service
	graceHours    int
	now           func() time.Time
}

// NewService creates the appointment lifecycle service. The grace window and
// clock are injected so the sweep can be exercised without real elapsed time.
func NewService(
	apptRepo domain.Repository,
	candidateRepo candidate.Repository,
	notifier notification.Service,
	graceHours int,
	now func() time.Time,
) domain.Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		apptRepo:      apptRepo,
		candidateRepo: candidateRepo,
		notifier:      notifier,
		graceHours:    graceHours,
		now:           now,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (domain.DetailResponse, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return domain.DetailResponse{}, err
	}
	return domain.NewDetailResponse(appt), nil
}

func (s *service) ListByCandidate(ctx context.Context, candidateID string) ([]domain.DetailResponse, error) {
	appts, err := s.apptRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	out := make([]domain.DetailResponse, 0, len(appts))
	for _, appt := range appts {
		out = append(out, domain.NewDetailResponse(appt))
	}
	return out, nil
}

// SweepOverdue walks scheduled appointments whose time passed the grace
// window. A re-run with no new data performs zero writes because the
// candidates are only inspected for still-scheduled rows and every transition
// is conditional on the pre-state.
func (s *service) SweepOverdue(ctx context.Context) error {
	now := s.now()
	cutoff := now.Add(-time.Duration(s.graceHours) * time.Hour)

	overdue, err := s.apptRepo.ListOverdueScheduled(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list overdue appointments: %w", err)
	}

	if len(overdue) == 0 {
		slog.Info("Sweep: no overdue appointments")
		return nil
	}

	lapsed, resolved, failed := 0, 0, 0
	for _, appt := range overdue {
		cand, err := s.candidateRepo.GetByID(ctx, appt.CandidateID)
		if err != nil {
			slog.Error("Sweep: failed to load candidate",
				"appointment_id", appt.ID,
				"candidate_id", appt.CandidateID,
				"error", err)
			failed++
			continue
		}

		if cand.Status.IsAutoResolve() {
			// Outcome already known, skip the lapsed state entirely
			reason := fmt.Sprintf("candidate status is %s", cand.Status)
			ok, err := s.apptRepo.MarkResolved(ctx, appt.ID, now, "system", reason, []domain.Status{domain.StatusScheduled})
			if err != nil {
				slog.Error("Sweep: failed to resolve appointment", "appointment_id", appt.ID, "error", err)
				failed++
				continue
			}
			if ok {
				resolved++
				metrics.SweepTransitionsTotal.WithLabelValues(string(domain.StatusResolved)).Inc()
				s.emit(ctx, notification.TypeAppointmentResolved, appt, map[string]interface{}{
					"resolved_reason": reason,
				})
			}
			continue
		}

		ok, err := s.apptRepo.MarkLapsed(ctx, appt.ID, now)
		if err != nil {
			slog.Error("Sweep: failed to lapse appointment", "appointment_id", appt.ID, "error", err)
			failed++
			continue
		}
		if ok {
			lapsed++
			metrics.SweepTransitionsTotal.WithLabelValues(string(domain.StatusLapsed)).Inc()
			s.emit(ctx, notification.TypeAppointmentLapsed, appt, nil)
		}
	}

	slog.Info("Sweep: overdue appointments processed",
		"total", len(overdue),
		"lapsed", lapsed,
		"resolved", resolved,
		"failed", failed)
	return nil
}

// HandleCandidateStatusChanged is delivered at-least-once and out of band
// with the triggering write; every transition checks its pre-state so a
// replay is a no-op.
func (s *service) HandleCandidateStatusChanged(ctx context.Context, ev events.CandidateStatusChanged) {
	if ev.OldStatus == ev.NewStatus {
		return
	}

	now := s.now()
	newStatus := candidate.Status(ev.NewStatus)

	if newStatus.IsAutoResolve() {
		lapsed, err := s.apptRepo.ListByCandidateAndStatus(ctx, ev.CandidateID, domain.StatusLapsed)
		if err != nil {
			slog.Error("Failed to list lapsed appointments for candidate",
				"candidate_id", ev.CandidateID, "error", err)
		} else {
			reason := fmt.Sprintf("candidate status is %s", newStatus)
			for _, appt := range lapsed {
				ok, err := s.apptRepo.MarkResolved(ctx, appt.ID, now, "system", reason, []domain.Status{domain.StatusLapsed})
				if err != nil {
					slog.Error("Failed to resolve lapsed appointment", "appointment_id", appt.ID, "error", err)
					continue
				}
				if ok {
					s.emit(ctx, notification.TypeAppointmentResolved, appt, map[string]interface{}{
						"resolved_reason": reason,
					})
				}
			}
		}
	}

	if newStatus.CancelsScheduled() {
		scheduled, err := s.apptRepo.ListByCandidateAndStatus(ctx, ev.CandidateID, domain.StatusScheduled)
		if err != nil {
			slog.Error("Failed to list scheduled appointments for candidate",
				"candidate_id", ev.CandidateID, "error", err)
			return
		}
		for _, appt := range scheduled {
			ok, err := s.apptRepo.MarkCancelled(ctx, appt.ID, now, string(newStatus))
			if err != nil {
				slog.Error("Failed to cancel scheduled appointment", "appointment_id", appt.ID, "error", err)
				continue
			}
			if ok {
				s.emit(ctx, notification.TypeAppointmentCancelled, appt, map[string]interface{}{
					"cancelled_reason": string(newStatus),
				})
			}
		}
	}
}

func (s *service) ResolveLapsed(ctx context.Context, req domain.ResolveRequest) (domain.ResolveResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.ResolveResponse{}, err
	}

	appt, err := s.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return domain.ResolveResponse{}, err
	}

	if appt.Status != domain.StatusLapsed {
		return domain.ResolveResponse{}, domain.ErrNotLapsed
	}

	now := s.now()

	switch domain.Resolution(req.Resolution) {
	case domain.ResolutionRescheduled:
		if req.NewDate == nil {
			return domain.ResolveResponse{}, domain.ErrMissingNewDate
		}
		newAt, parseErr := time.Parse(time.RFC3339, *req.NewDate)
		if parseErr != nil {
			return domain.ResolveResponse{}, domain.ErrMissingNewDate
		}
		ok, err := s.apptRepo.Reschedule(ctx, appt.ID, newAt, appt.ScheduledAt, req.ResolvedBy)
		if err != nil {
			return domain.ResolveResponse{}, fmt.Errorf("failed to reschedule appointment: %w", err)
		}
		if !ok {
			return domain.ResolveResponse{}, domain.ErrNotLapsed
		}
		s.emit(ctx, notification.TypeAppointmentRescheduled, appt, map[string]interface{}{
			"rescheduled_from": appt.ScheduledAt.Format(time.RFC3339),
			"scheduled_at":     newAt.Format(time.RFC3339),
		})
		return domain.ResolveResponse{AppointmentID: appt.ID, NewStatus: string(domain.StatusScheduled)}, nil

	case domain.ResolutionCompleted, domain.ResolutionCancelled, domain.ResolutionNoShow:
		target := domain.Status(req.Resolution)
		ok, err := s.apptRepo.ResolveLapsedTo(ctx, appt.ID, target, now, req.ResolvedBy, req.Notes)
		if err != nil {
			return domain.ResolveResponse{}, fmt.Errorf("failed to resolve appointment: %w", err)
		}
		if !ok {
			return domain.ResolveResponse{}, domain.ErrNotLapsed
		}

		if target == domain.StatusNoShow {
			if err := s.candidateRepo.MarkNoShow(ctx, appt.CandidateID, now); err != nil {
				slog.Error("Failed to record candidate no-show",
					"candidate_id", appt.CandidateID, "error", err)
			}
		}

		s.emit(ctx, notification.TypeAppointmentResolved, appt, map[string]interface{}{
			"resolution":  req.Resolution,
			"resolved_by": req.ResolvedBy,
		})
		return domain.ResolveResponse{AppointmentID: appt.ID, NewStatus: string(target)}, nil

	default:
		return domain.ResolveResponse{}, domain.ErrInvalidResolution
	}
}

func (s *service) SendFeedbackReminders(ctx context.Context) error {
	cutoff := s.now().Add(-feedbackReminderDelay)

	pending, err := s.apptRepo.ListPendingFeedbackReminders(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list pending feedback reminders: %w", err)
	}

	sent := 0
	for _, appt := range pending {
		ok, err := s.apptRepo.MarkFeedbackReminderSent(ctx, appt.ID)
		if err != nil {
			slog.Error("Failed to mark feedback reminder", "appointment_id", appt.ID, "error", err)
			continue
		}
		if ok {
			sent++
			s.emit(ctx, notification.TypeFeedbackReminder, appt, nil)
		}
	}

	if sent > 0 {
		slog.Info("Feedback reminders emitted", "count", sent)
	}
	return nil
}

func (s *service) emit(ctx context.Context, factType notification.FactType, appt domain.Appointment, data map[string]interface{}) {
	if s.notifier == nil {
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	data["branch_id"] = appt.BranchID
	data["type"] = string(appt.Type)
	data["scheduled_at"] = appt.ScheduledAt.Format(time.RFC3339)

	apptID := appt.ID
	_ = s.notifier.Emit(ctx, notification.Fact{
		Type:          factType,
		CandidateID:   appt.CandidateID,
		AppointmentID: &apptID,
		Data:          data,
	})
}
