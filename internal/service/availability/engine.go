package availability

import (
	"sort"
	"time"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	"github.com/flowhire/scheduling-backend-go/internal/domain/availability"
)

// SlotsFor computes the ordered bookable slots for one branch-day. Pure and
// deterministic: the result depends only on the arguments, so the same inputs
// always produce the same sequence.
//
// Rules:
//   - a blackout date yields an empty sequence
//   - slots are enumerated at the settings' slot-duration step across each of
//     the weekday's open windows, and must fit entirely inside the window at
//     the requested duration
//   - slots starting before now + minimum notice are dropped
//   - a slot is unavailable when any still-blocking appointment overlaps
//     [start, start+duration); touching boundaries do not overlap
func SlotsFor(
	settings availability.Settings,
	appointments []appointment.Appointment,
	date time.Time,
	durationMinutes int,
	now time.Time,
) []availability.TimeSlot {
	slots := make([]availability.TimeSlot, 0)

	if durationMinutes < 1 || settings.SlotDurationMinutes < 1 {
		return slots
	}
	if settings.IsBlackout(date) {
		return slots
	}

	minStart := now.Add(time.Duration(settings.MinimumNoticeHours) * time.Hour)
	step := time.Duration(settings.SlotDurationMinutes) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute
	dateKey := date.Format("2006-01-02")

	for _, window := range settings.WindowsFor(date) {
		windowStart, okStart := clockOn(date, window.Start)
		windowEnd, okEnd := clockOn(date, window.End)
		if !okStart || !okEnd || !windowStart.Before(windowEnd) {
			continue
		}

		for slotStart := windowStart; !slotStart.Add(duration).After(windowEnd); slotStart = slotStart.Add(step) {
			if slotStart.Before(minStart) {
				continue
			}
			slots = append(slots, availability.TimeSlot{
				Date:      dateKey,
				Time:      slotStart.Format("15:04"),
				Available: !anyOverlap(appointments, slotStart, slotStart.Add(duration)),
			})
		}
	}

	// Windows may be listed out of order; the contract is an ordered sequence
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})

	return slots
}

// anyOverlap reports whether any blocking appointment intersects [start, end)
func anyOverlap(appointments []appointment.Appointment, start, end time.Time) bool {
	for _, appt := range appointments {
		if appt.Blocks() && appt.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// clockOn composes an "HH:MM" clock value onto the given date
func clockOn(date time.Time, clock string) (time.Time, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}

// GroupSlots buckets a flat slot sequence into morning/afternoon/evening for
// display. Empty buckets are omitted.
func GroupSlots(slots []availability.TimeSlot) []availability.SlotGroup {
	buckets := map[string][]availability.TimeSlot{}
	for _, slot := range slots {
		label := "morning"
		switch {
		case slot.Time >= "17:00":
			label = "evening"
		case slot.Time >= "12:00":
			label = "afternoon"
		}
		buckets[label] = append(buckets[label], slot)
	}

	groups := make([]availability.SlotGroup, 0, 3)
	for _, label := range []string{"morning", "afternoon", "evening"} {
		if len(buckets[label]) > 0 {
			groups = append(groups, availability.SlotGroup{Label: label, Slots: buckets[label]})
		}
	}
	return groups
}
