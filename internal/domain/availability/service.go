package availability

import "context"

// Service defines the interface for availability queries
type Service interface {
	// TimeSlots computes the ordered bookable slots for a branch and date at
	// the given duration. Recomputed fresh on every call.
	TimeSlots(ctx context.Context, branchID, date string, durationMinutes int) ([]TimeSlot, error)

	// DaySummaries computes the per-day schedule summary over [from, to]
	DaySummaries(ctx context.Context, branchID, from, to string, durationMinutes int) ([]DaySummary, error)
}
