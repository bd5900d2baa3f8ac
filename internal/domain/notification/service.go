package notification

import (
	"context"
)

// Service is the emit-facts boundary between the scheduling core and the
// delivery side. Emission is fire-and-forget from the caller's perspective.
type Service interface {
	// Emit queues a lifecycle fact for async persistence and delivery
	Emit(ctx context.Context, fact Fact) error

	// ListByCandidate lists a candidate's facts (operator surface)
	ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*Fact, error)

	// Stop drains the queue and stops the background worker
	Stop()
}
