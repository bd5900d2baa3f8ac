package availability

import "time"

// OpenWindow is a single open interval within a weekday, clock times in
// 24-hour "HH:MM" form
type OpenWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklySchedule maps weekday → open windows. A missing or empty entry means
// the branch is closed that day.
type WeeklySchedule map[time.Weekday][]OpenWindow

// Settings is the recurring availability configuration for a branch, or the
// global default when BranchID is nil. Settings are configuration-owned
// input; the scheduling core never mutates them.
type Settings struct {
	ID                  string
	BranchID            *string
	Weekly              WeeklySchedule
	SlotDurationMinutes int
	MinimumNoticeHours  int
	BlackoutDates       []string // "YYYY-MM-DD"
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsBlackout checks whether the given date is blacked out
func (s *Settings) IsBlackout(date time.Time) bool {
	key := date.Format("2006-01-02")
	for _, d := range s.BlackoutDates {
		if d == key {
			return true
		}
	}
	return false
}

// WindowsFor returns the open windows for the date's weekday
func (s *Settings) WindowsFor(date time.Time) []OpenWindow {
	return s.Weekly[date.Weekday()]
}

// TimeSlot is a computed candidate reservation window. Slots are derived
// fresh on every query and never persisted.
type TimeSlot struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
