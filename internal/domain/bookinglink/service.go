package bookinglink

import "context"

// Service defines the interface for booking link business logic
type Service interface {
	// Issue creates a booking link and returns the one-time plaintext secret
	Issue(ctx context.Context, req IssueRequest) (IssueResponse, error)

	// Validate classifies a presented secret. It is side-effect free and
	// idempotent: repeated calls never consume a use or mutate the link.
	Validate(ctx context.Context, secret string) (LinkData, error)

	// Lookup resolves a presented secret to its link without classification
	// side effects (used by the booking surface to scope availability queries)
	Lookup(ctx context.Context, secret string) (BookingLink, error)

	// ListByCandidate lists all links issued for a candidate
	ListByCandidate(ctx context.Context, candidateID string) ([]ListItemResponse, error)

	// Revoke revokes a still-active link
	Revoke(ctx context.Context, id string) error

	// EffectiveDuration resolves the slot duration for a link: the explicit
	// override wins, otherwise the configured default for the link type.
	EffectiveDuration(link BookingLink) int
}
