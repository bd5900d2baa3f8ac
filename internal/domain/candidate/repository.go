package candidate

import (
	"context"
	"time"
)

// Repository defines the interface for candidate data access
type Repository interface {
	// GetByID retrieves a candidate by id
	GetByID(ctx context.Context, id string) (Candidate, error)

	// UpdateStatus sets the candidate's status and returns the previous one
	UpdateStatus(ctx context.Context, id string, status Status) (Status, error)

	// MarkNoShow records the candidate's most recent no-show for downstream
	// business logic
	MarkNoShow(ctx context.Context, id string, at time.Time) error
}
