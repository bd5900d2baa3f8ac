package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	"github.com/flowhire/scheduling-backend-go/internal/domain/availability"
	"github.com/flowhire/scheduling-backend-go/internal/domain/bookinglink"
	"github.com/flowhire/scheduling-backend-go/internal/domain/notification"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/metrics"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/token"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/validator"
	availabilityengine "github.com/flowhire/scheduling-backend-go/internal/service/availability"
)

// TxBeginner starts the transaction a reservation runs in. Satisfied by
// *database.DB and by pgxmock in tests.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ReserveRequest - candidate request to reserve a slot
type ReserveRequest struct {
	Secret   string `json:"-"` // from URL
	BranchID string `json:"branch_id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM
}

func (r *ReserveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Secret) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "booking token is required",
		})
	}
	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidClockTime(r.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Service coordinates the one operation that needs true atomicity: turning a
// booking link plus a free slot into an appointment.
type Service interface {
	// Reserve books the requested slot inside a single transaction. The token
	// is validated, availability re-checked and the link use consumed against
	// the same committed state; any failure leaves nothing behind.
	Reserve(ctx context.Context, req ReserveRequest) (appointment.DetailResponse, error)
}

type service struct {
	db           TxBeginner
	linkRepo     bookinglink.Repository
	apptRepo     appointment.Repository
	settingsRepo availability.Repository
	linkService  bookinglink.Service
	notifier     notification.Service
	now          func() time.Time
}

// NewService creates the booking coordinator
func NewService(
	db TxBeginner,
	linkRepo bookinglink.Repository,
	apptRepo appointment.Repository,
	settingsRepo availability.Repository,
	linkService bookinglink.Service,
	notifier notification.Service,
	now func() time.Time,
) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		db:           db,
		linkRepo:     linkRepo,
		apptRepo:     apptRepo,
		settingsRepo: settingsRepo,
		linkService:  linkService,
		notifier:     notifier,
		now:          now,
	}
}

func (s *service) Reserve(ctx context.Context, req ReserveRequest) (appointment.DetailResponse, error) {
	if err := req.Validate(); err != nil {
		return appointment.DetailResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return appointment.DetailResponse{}, availability.ErrInvalidDate
	}

	now := s.now()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return appointment.DetailResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent reservations for the same branch and day. The
	// lock is released with the transaction.
	if _, err := tx.Exec(ctx,
		"SELECT pg_advisory_xact_lock(hashtext($1))",
		req.BranchID+"|"+req.Date,
	); err != nil {
		return appointment.DetailResponse{}, fmt.Errorf("failed to acquire booking lock: %w", err)
	}

	linkRepo := s.linkRepo.WithTx(tx)
	apptRepo := s.apptRepo.WithTx(tx)

	link, err := linkRepo.GetByTokenHash(ctx, token.Hash(req.Secret))
	if err != nil {
		if err == bookinglink.ErrLinkNotFound {
			return appointment.DetailResponse{}, bookinglink.ErrLinkInvalid
		}
		return appointment.DetailResponse{}, fmt.Errorf("failed to look up booking link: %w", err)
	}
	if err := link.Usable(now); err != nil {
		return appointment.DetailResponse{}, err
	}
	if link.BranchID != req.BranchID {
		return appointment.DetailResponse{}, bookinglink.ErrLinkInvalid
	}

	durationMinutes := s.linkService.EffectiveDuration(link)

	settings, err := s.settingsRepo.GetByBranch(ctx, req.BranchID)
	if err != nil {
		return appointment.DetailResponse{}, fmt.Errorf("failed to load availability settings: %w", err)
	}

	dayStart := date
	dayEnd := date.Add(24 * time.Hour)
	blocking, err := apptRepo.ListBlockingByBranchAndRange(ctx, req.BranchID, dayStart, dayEnd)
	if err != nil {
		return appointment.DetailResponse{}, fmt.Errorf("failed to list appointments: %w", err)
	}

	// Re-check against the state this transaction sees, not the snapshot the
	// candidate picked the slot from.
	slots := availabilityengine.SlotsFor(settings, blocking, date, durationMinutes, now)
	var requested *availability.TimeSlot
	for i := range slots {
		if slots[i].Time == req.Time {
			requested = &slots[i]
			break
		}
	}
	if requested == nil {
		return appointment.DetailResponse{}, appointment.ErrSlotUnavailable
	}
	if !requested.Available {
		metrics.SlotConflictsTotal.Inc()
		return appointment.DetailResponse{}, appointment.ErrSlotConflict
	}

	scheduledAt, err := time.Parse("2006-01-02 15:04", req.Date+" "+req.Time)
	if err != nil {
		return appointment.DetailResponse{}, availability.ErrInvalidDate
	}

	id, err := uuid.NewV7()
	if err != nil {
		return appointment.DetailResponse{}, fmt.Errorf("failed to generate appointment id: %w", err)
	}

	appt, err := apptRepo.Create(ctx, appointment.Appointment{
		ID:              id.String(),
		CandidateID:     link.CandidateID,
		CandidateName:   link.CandidateName,
		BranchID:        req.BranchID,
		Type:            appointment.Type(link.Type),
		ScheduledAt:     scheduledAt,
		DurationMinutes: durationMinutes,
		Status:          appointment.StatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return appointment.DetailResponse{}, fmt.Errorf("failed to create appointment: %w", err)
	}

	ok, err := linkRepo.ConsumeUse(ctx, link.ID, appt.ID, now)
	if err != nil {
		return appointment.DetailResponse{}, fmt.Errorf("failed to consume booking link: %w", err)
	}
	if !ok {
		// Lost the race to the link's last use; roll everything back.
		return appointment.DetailResponse{}, bookinglink.ErrLinkUsed
	}

	if err := tx.Commit(ctx); err != nil {
		return appointment.DetailResponse{}, fmt.Errorf("failed to commit reservation: %w", err)
	}

	metrics.ReservationsTotal.Inc()
	slog.Info("Appointment reserved",
		"appointment_id", appt.ID,
		"candidate_id", link.CandidateID,
		"branch_id", req.BranchID,
		"scheduled_at", scheduledAt.Format(time.RFC3339))

	if s.notifier != nil {
		apptID := appt.ID
		_ = s.notifier.Emit(ctx, notification.Fact{
			Type:          notification.TypeAppointmentCreated,
			CandidateID:   link.CandidateID,
			AppointmentID: &apptID,
			Data: map[string]interface{}{
				"branch_id":    req.BranchID,
				"type":         string(link.Type),
				"scheduled_at": scheduledAt.Format(time.RFC3339),
			},
		})
	}

	return appointment.NewDetailResponse(appt), nil
}
