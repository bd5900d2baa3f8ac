package bookinglink

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Repository defines the interface for booking link data access
type Repository interface {
	// Create creates a new booking link record
	Create(ctx context.Context, link BookingLink) (BookingLink, error)

	// GetByTokenHash retrieves a link by the digest of its secret. Lookup is
	// by hash equality only; plaintext secrets are never stored or compared.
	GetByTokenHash(ctx context.Context, tokenHash string) (BookingLink, error)

	// GetByID retrieves a link by id
	GetByID(ctx context.Context, id string) (BookingLink, error)

	// ListByCandidate lists all links issued for a candidate, newest first
	ListByCandidate(ctx context.Context, candidateID string) ([]BookingLink, error)

	// ConsumeUse atomically increments use_count, records the appointment and
	// flips status to used when the last allowed use is consumed. Returns false
	// when the link was no longer consumable (raced to exhaustion or revoked).
	ConsumeUse(ctx context.Context, id, appointmentID string, usedAt time.Time) (bool, error)

	// MarkRevoked marks an active link as revoked
	MarkRevoked(ctx context.Context, id string) error

	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx pgx.Tx) Repository
}
