package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/availability"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/database"
)

type availabilityRepositoryImpl struct {
	db *database.DB
}

// NewAvailabilityRepository creates a new availability settings repository instance
func NewAvailabilityRepository(db *database.DB) availability.Repository {
	return &availabilityRepositoryImpl{db: db}
}

// GetByBranch implements availability.Repository. A branch without its own
// row inherits the global default (branch_id IS NULL).
func (r *availabilityRepositoryImpl) GetByBranch(ctx context.Context, branchID string) (availability.Settings, error) {
	query := `
		SELECT id, branch_id, weekly_schedule, slot_duration_minutes,
			   minimum_notice_hours, blackout_dates, created_at, updated_at
		FROM availability_settings
		WHERE branch_id = $1 OR branch_id IS NULL
		ORDER BY branch_id NULLS LAST
		LIMIT 1
	`

	var (
		settings  availability.Settings
		weeklyRaw []byte
		blackouts []string
	)
	err := r.db.Pool.QueryRow(ctx, query, branchID).Scan(
		&settings.ID, &settings.BranchID, &weeklyRaw, &settings.SlotDurationMinutes,
		&settings.MinimumNoticeHours, &blackouts, &settings.CreatedAt, &settings.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return availability.Settings{}, availability.ErrSettingsNotFound
		}
		return availability.Settings{}, fmt.Errorf("failed to get availability settings: %w", err)
	}

	settings.BlackoutDates = blackouts
	settings.Weekly, err = decodeWeeklySchedule(weeklyRaw)
	if err != nil {
		return availability.Settings{}, fmt.Errorf("failed to decode weekly schedule: %w", err)
	}

	return settings, nil
}

// The JSONB column keys windows by weekday name so the stored document stays
// readable; time.Weekday's zero-based ints would not be.
func decodeWeeklySchedule(raw []byte) (availability.WeeklySchedule, error) {
	var byName map[string][]availability.OpenWindow
	if err := json.Unmarshal(raw, &byName); err != nil {
		return nil, err
	}

	weekly := availability.WeeklySchedule{}
	for name, windows := range byName {
		day, ok := weekdayByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		weekly[day] = windows
	}

	return weekly, nil
}

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}
