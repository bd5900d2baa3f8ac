package notification

import (
	"context"
)

// Repository defines the fact persistence interface
type Repository interface {
	// CreateBatch persists several facts in one round trip
	CreateBatch(ctx context.Context, facts []*Fact) error

	// ListByCandidate lists a candidate's facts, newest first
	ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*Fact, error)
}
