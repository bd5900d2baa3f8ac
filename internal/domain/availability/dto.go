package availability

// DaySummary - per-day schedule summary for a calendar view
type DaySummary struct {
	Date           string `json:"date"`
	Open           bool   `json:"open"`
	Blackout       bool   `json:"blackout"`
	TotalSlots     int    `json:"total_slots"`
	AvailableSlots int    `json:"available_slots"`
}

// SlotGroup buckets slots for display; the grouping is a presentation concern
// layered on top of the engine's flat ordered sequence
type SlotGroup struct {
	Label string     `json:"label"` // morning, afternoon, evening
	Slots []TimeSlot `json:"slots"`
}
