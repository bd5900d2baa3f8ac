package availability

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	domain "github.com/flowhire/scheduling-backend-go/internal/domain/availability"
)

type fakeSettingsRepo struct {
	settings domain.Settings
}

func (r *fakeSettingsRepo) GetByBranch(ctx context.Context, branchID string) (domain.Settings, error) {
	return r.settings, nil
}

type fakeApptRepo struct {
	appts []appointment.Appointment
}

func (r *fakeApptRepo) Create(ctx context.Context, appt appointment.Appointment) (appointment.Appointment, error) {
	return appt, nil
}

func (r *fakeApptRepo) GetByID(ctx context.Context, id string) (appointment.Appointment, error) {
	return appointment.Appointment{}, appointment.ErrAppointmentNotFound
}

func (r *fakeApptRepo) ListOverdueScheduled(ctx context.Context, before time.Time) ([]appointment.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByCandidateAndStatus(ctx context.Context, candidateID string, status appointment.Status) ([]appointment.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByCandidate(ctx context.Context, candidateID string) ([]appointment.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListBlockingByBranchAndRange(ctx context.Context, branchID string, from, to time.Time) ([]appointment.Appointment, error) {
	var out []appointment.Appointment
	for _, appt := range r.appts {
		if appt.BranchID == branchID && appt.Blocks() && appt.Overlaps(from, to) {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) MarkLapsed(ctx context.Context, id string, at time.Time) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) MarkResolved(ctx context.Context, id string, at time.Time, by, reason string, expected []appointment.Status) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) MarkCancelled(ctx context.Context, id string, at time.Time, reason string) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) ResolveLapsedTo(ctx context.Context, id string, status appointment.Status, at time.Time, by string, notes *string) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) Reschedule(ctx context.Context, id string, newAt, previousAt time.Time, by string) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) ListPendingFeedbackReminders(ctx context.Context, completedBefore time.Time) ([]appointment.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) MarkFeedbackReminderSent(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) WithTx(tx pgx.Tx) appointment.Repository { return r }

// summaryNow is well before the queried range so the notice window never
// trims slots in these tests
var summaryNow = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func newSummaryService(appts ...appointment.Appointment) domain.Service {
	branchID := "branch-1"
	settings := domain.Settings{
		ID:       "settings-1",
		BranchID: &branchID,
		Weekly: domain.WeeklySchedule{
			time.Monday:  {{Start: "09:00", End: "17:00"}},
			time.Tuesday: {{Start: "09:00", End: "17:00"}},
		},
		SlotDurationMinutes: 30,
		MinimumNoticeHours:  2,
		BlackoutDates:       []string{"2026-09-08"},
	}
	return NewService(
		&fakeSettingsRepo{settings: settings},
		&fakeApptRepo{appts: appts},
		func() time.Time { return summaryNow },
	)
}

func TestDaySummariesRejectsInvalidDates(t *testing.T) {
	svc := newSummaryService()

	_, err := svc.DaySummaries(context.Background(), "branch-1", "07-09-2026", "2026-09-09", 30)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = svc.DaySummaries(context.Background(), "branch-1", "2026-09-07", "next tuesday", 30)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestDaySummariesRejectsInvalidRange(t *testing.T) {
	svc := newSummaryService()

	_, err := svc.DaySummaries(context.Background(), "branch-1", "2026-09-09", "2026-09-07", 30)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.DaySummaries(context.Background(), "branch-1", "2026-06-01", "2026-09-01", 30)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestDaySummariesRange(t *testing.T) {
	// one blocking appointment on the Monday, 10:00 for 30 minutes
	svc := newSummaryService(appointment.Appointment{
		ID:              "appt-1",
		BranchID:        "branch-1",
		Type:            appointment.TypeInterview,
		ScheduledAt:     time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          appointment.StatusScheduled,
	})

	// Monday (open, one conflict), Tuesday (blackout), Wednesday (closed)
	summaries, err := svc.DaySummaries(context.Background(), "branch-1", "2026-09-07", "2026-09-09", 30)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	monday := summaries[0]
	assert.Equal(t, "2026-09-07", monday.Date)
	assert.True(t, monday.Open)
	assert.False(t, monday.Blackout)
	assert.Equal(t, 16, monday.TotalSlots)
	assert.Equal(t, 15, monday.AvailableSlots)

	tuesday := summaries[1]
	assert.Equal(t, "2026-09-08", tuesday.Date)
	assert.False(t, tuesday.Open)
	assert.True(t, tuesday.Blackout)
	assert.Zero(t, tuesday.TotalSlots)

	wednesday := summaries[2]
	assert.Equal(t, "2026-09-09", wednesday.Date)
	assert.False(t, wednesday.Open)
	assert.False(t, wednesday.Blackout)
	assert.Zero(t, wednesday.TotalSlots)
	assert.Zero(t, wednesday.AvailableSlots)
}

func TestDaySummariesSingleDayRange(t *testing.T) {
	svc := newSummaryService()

	summaries, err := svc.DaySummaries(context.Background(), "branch-1", "2026-09-07", "2026-09-07", 30)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "2026-09-07", summaries[0].Date)
	assert.Equal(t, 16, summaries[0].TotalSlots)
	assert.Equal(t, 16, summaries[0].AvailableSlots)
}
