package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	domain "github.com/flowhire/scheduling-backend-go/internal/domain/availability"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/validator"
)

const maxSummaryDays = 62

type service struct {
	settingsRepo domain.Repository
	apptRepo     appointment.Repository
	now          func() time.Time
}

// NewService creates a new availability service. The clock is injectable so
// tests can pin "now"; pass nil for the real clock.
func NewService(settingsRepo domain.Repository, apptRepo appointment.Repository, now func() time.Time) domain.Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		settingsRepo: settingsRepo,
		apptRepo:     apptRepo,
		now:          now,
	}
}

func (s *service) TimeSlots(ctx context.Context, branchID, dateStr string, durationMinutes int) ([]domain.TimeSlot, error) {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return nil, domain.ErrInvalidDate
	}

	settings, err := s.settingsRepo.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability settings: %w", err)
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	appts, err := s.apptRepo.ListBlockingByBranchAndRange(ctx, branchID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	return SlotsFor(settings, appts, date, durationMinutes, s.now()), nil
}

func (s *service) DaySummaries(ctx context.Context, branchID, fromStr, toStr string, durationMinutes int) ([]domain.DaySummary, error) {
	from, ok := validator.IsValidDate(fromStr)
	if !ok {
		return nil, domain.ErrInvalidDate
	}
	to, ok := validator.IsValidDate(toStr)
	if !ok {
		return nil, domain.ErrInvalidDate
	}
	if to.Before(from) || to.Sub(from) > maxSummaryDays*24*time.Hour {
		return nil, domain.ErrInvalidRange
	}

	settings, err := s.settingsRepo.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability settings: %w", err)
	}

	// One query for the whole range; the engine filters per day by overlap
	appts, err := s.apptRepo.ListBlockingByBranchAndRange(ctx, branchID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	now := s.now()
	summaries := make([]domain.DaySummary, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		slots := SlotsFor(settings, appts, day, durationMinutes, now)
		available := 0
		for _, slot := range slots {
			if slot.Available {
				available++
			}
		}
		summaries = append(summaries, domain.DaySummary{
			Date:           day.Format("2006-01-02"),
			Open:           len(settings.WindowsFor(day)) > 0 && !settings.IsBlackout(day),
			Blackout:       settings.IsBlackout(day),
			TotalSlots:     len(slots),
			AvailableSlots: available,
		})
	}

	return summaries, nil
}
