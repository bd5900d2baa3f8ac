package availability

import (
	"testing"
	"time"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	domain "github.com/flowhire/scheduling-backend-go/internal/domain/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mon-Fri 09:00-17:00, 30-minute slots, 2 hours minimum notice
func weekdaySettings() domain.Settings {
	weekly := domain.WeeklySchedule{}
	for day := time.Monday; day <= time.Friday; day++ {
		weekly[day] = []domain.OpenWindow{{Start: "09:00", End: "17:00"}}
	}
	return domain.Settings{
		ID:                  "settings-1",
		Weekly:              weekly,
		SlotDurationMinutes: 30,
		MinimumNoticeHours:  2,
	}
}

// 2026-09-07 is a Monday
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func TestSlotsForFirstSlotRespectsMinimumNotice(t *testing.T) {
	// now = Monday 08:00 with 2h notice → first slot is 10:00
	slots := SlotsFor(weekdaySettings(), nil, monday, 30, at(monday, 8, 0))

	require.NotEmpty(t, slots)
	assert.Equal(t, "10:00", slots[0].Time)
	assert.True(t, slots[0].Available)

	for _, slot := range slots {
		assert.GreaterOrEqual(t, slot.Time, "10:00", "no slot may start before now + minimum notice")
	}
}

func TestSlotsForFullDayWhenNoticeAlreadyPassed(t *testing.T) {
	// Querying a week ahead: every slot of the open window is returned
	slots := SlotsFor(weekdaySettings(), nil, monday, 30, at(monday.AddDate(0, 0, -7), 8, 0))

	// 09:00 through 16:30 inclusive at a 30-minute step
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "16:30", slots[len(slots)-1].Time)
}

func TestSlotsForBlackoutDate(t *testing.T) {
	settings := weekdaySettings()
	settings.BlackoutDates = []string{monday.Format("2006-01-02")}

	slots := SlotsFor(settings, nil, monday, 30, at(monday, 0, 0))
	assert.Empty(t, slots)
}

func TestSlotsForClosedDay(t *testing.T) {
	sunday := monday.AddDate(0, 0, -1)
	slots := SlotsFor(weekdaySettings(), nil, sunday, 30, at(sunday, 0, 0))
	assert.Empty(t, slots)
}

func TestSlotsForMarksOverlapUnavailable(t *testing.T) {
	appts := []appointment.Appointment{
		{
			BranchID:        "branch-1",
			Status:          appointment.StatusScheduled,
			ScheduledAt:     at(monday, 10, 0),
			DurationMinutes: 30,
		},
	}

	slots := SlotsFor(weekdaySettings(), appts, monday, 30, at(monday, 0, 0))

	byTime := map[string]bool{}
	for _, slot := range slots {
		byTime[slot.Time] = slot.Available
	}
	assert.False(t, byTime["10:00"], "occupied slot must be unavailable")
	// Touching boundaries are not overlaps
	assert.True(t, byTime["09:30"])
	assert.True(t, byTime["10:30"])
}

func TestSlotsForCancelledAppointmentDoesNotBlock(t *testing.T) {
	appts := []appointment.Appointment{
		{
			Status:          appointment.StatusCancelled,
			ScheduledAt:     at(monday, 10, 0),
			DurationMinutes: 30,
		},
	}

	slots := SlotsFor(weekdaySettings(), appts, monday, 30, at(monday, 0, 0))
	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestSlotsForLongerDurationOverlapsMore(t *testing.T) {
	appts := []appointment.Appointment{
		{
			Status:          appointment.StatusScheduled,
			ScheduledAt:     at(monday, 11, 0),
			DurationMinutes: 30,
		},
	}

	// A 60-minute booking starting 10:30 would run into the 11:00 appointment
	slots := SlotsFor(weekdaySettings(), appts, monday, 60, at(monday, 0, 0))

	byTime := map[string]bool{}
	for _, slot := range slots {
		byTime[slot.Time] = slot.Available
	}
	assert.False(t, byTime["10:30"])
	assert.False(t, byTime["11:00"])
	assert.True(t, byTime["10:00"])
	assert.True(t, byTime["11:30"])
}

func TestSlotsForDurationMustFitWindow(t *testing.T) {
	// 16:30 start with a 60-minute duration would spill past 17:00
	slots := SlotsFor(weekdaySettings(), nil, monday, 60, at(monday, 0, 0))

	require.NotEmpty(t, slots)
	assert.Equal(t, "16:00", slots[len(slots)-1].Time)
}

func TestSlotsForSplitWindows(t *testing.T) {
	settings := weekdaySettings()
	settings.Weekly[time.Monday] = []domain.OpenWindow{
		{Start: "13:00", End: "15:00"},
		{Start: "09:00", End: "11:00"},
	}

	slots := SlotsFor(settings, nil, monday, 30, at(monday, 0, 0))

	require.Len(t, slots, 8)
	// ordered despite windows listed out of order
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "14:30", slots[len(slots)-1].Time)
}

func TestSlotsForDeterministic(t *testing.T) {
	appts := []appointment.Appointment{
		{Status: appointment.StatusScheduled, ScheduledAt: at(monday, 9, 30), DurationMinutes: 30},
	}
	now := at(monday, 7, 0)

	first := SlotsFor(weekdaySettings(), appts, monday, 30, now)
	second := SlotsFor(weekdaySettings(), appts, monday, 30, now)
	assert.Equal(t, first, second)
}

func TestGroupSlots(t *testing.T) {
	slots := []domain.TimeSlot{
		{Time: "09:00", Available: true},
		{Time: "11:30", Available: true},
		{Time: "12:00", Available: true},
		{Time: "17:00", Available: true},
	}

	groups := GroupSlots(slots)

	require.Len(t, groups, 3)
	assert.Equal(t, "morning", groups[0].Label)
	assert.Len(t, groups[0].Slots, 2)
	assert.Equal(t, "afternoon", groups[1].Label)
	assert.Len(t, groups[1].Slots, 1)
	assert.Equal(t, "evening", groups[2].Label)
	assert.Len(t, groups[2].Slots, 1)
}
