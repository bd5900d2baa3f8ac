package candidate

import "context"

// StatusUpdateResponse - result of a candidate status update
type StatusUpdateResponse struct {
	CandidateID string `json:"candidate_id"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
}

// Service defines the interface for candidate status updates inside the
// scheduling core. Every genuine change is published on the event bus.
type Service interface {
	// GetByID retrieves a candidate
	GetByID(ctx context.Context, id string) (Candidate, error)

	// UpdateStatus applies a status change and publishes
	// CandidateStatusChanged when the value actually changed
	UpdateStatus(ctx context.Context, id, status string) (StatusUpdateResponse, error)
}
