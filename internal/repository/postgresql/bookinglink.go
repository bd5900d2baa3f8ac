package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/bookinglink"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/database"
)

const bookingLinkColumns = `
	id, token_hash, candidate_id, candidate_name, email, type, duration_minutes,
	job_title, branch_id, branch_name, status, expires_at, max_uses, use_count,
	used_at, appointment_id, created_at, created_by, updated_at
`

type bookingLinkRepositoryImpl struct {
	db *database.DB
	q  database.Querier
}

// NewBookingLinkRepository creates a new booking link repository instance
func NewBookingLinkRepository(db *database.DB) bookinglink.Repository {
	return &bookingLinkRepositoryImpl{db: db}
}

func (r *bookingLinkRepositoryImpl) querier() database.Querier {
	if r.q != nil {
		return r.q
	}
	return r.db.Pool
}

// WithTx implements bookinglink.Repository.
func (r *bookingLinkRepositoryImpl) WithTx(tx pgx.Tx) bookinglink.Repository {
	return &bookingLinkRepositoryImpl{db: r.db, q: tx}
}

// Create implements bookinglink.Repository.
func (r *bookingLinkRepositoryImpl) Create(ctx context.Context, link bookinglink.BookingLink) (bookinglink.BookingLink, error) {
	query := `
		INSERT INTO booking_links (
			id, token_hash, candidate_id, candidate_name, email, type, duration_minutes,
			job_title, branch_id, branch_name, status, expires_at, max_uses, use_count,
			created_at, created_by, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $15)
		RETURNING ` + bookingLinkColumns

	return r.scanOne(r.querier().QueryRow(ctx, query,
		link.ID, link.TokenHash, link.CandidateID, link.CandidateName, link.Email,
		link.Type, link.DurationMinutes, link.JobTitle, link.BranchID, link.BranchName,
		link.Status, link.ExpiresAt, link.MaxUses, link.UseCount,
		link.CreatedAt, link.CreatedBy,
	), "failed to create booking link")
}

// GetByTokenHash implements bookinglink.Repository.
func (r *bookingLinkRepositoryImpl) GetByTokenHash(ctx context.Context, tokenHash string) (bookinglink.BookingLink, error) {
	query := `SELECT ` + bookingLinkColumns + ` FROM booking_links WHERE token_hash = $1`
	return r.scanOne(r.querier().QueryRow(ctx, query, tokenHash), "failed to get booking link by token hash")
}

// GetByID implements bookinglink.Repository.
func (r *bookingLinkRepositoryImpl) GetByID(ctx context.Context, id string) (bookinglink.BookingLink, error) {
	query := `SELECT ` + bookingLinkColumns + ` FROM booking_links WHERE id = $1`
	return r.scanOne(r.querier().QueryRow(ctx, query, id), "failed to get booking link")
}

// ListByCandidate implements bookinglink.Repository.
func (r *bookingLinkRepositoryImpl) ListByCandidate(ctx context.Context, candidateID string) ([]bookinglink.BookingLink, error) {
	query := `
		SELECT ` + bookingLinkColumns + `
		FROM booking_links
		WHERE candidate_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.querier().Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking links: %w", err)
	}
	defer rows.Close()

	var links []bookinglink.BookingLink
	for rows.Next() {
		link, err := scanBookingLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list booking links: %w", err)
	}

	return links, nil
}

// ConsumeUse implements bookinglink.Repository. The guard on status and
// use_count makes the increment safe under concurrent reservations; zero rows
// affected means the link lost the race.
func (r *bookingLinkRepositoryImpl) ConsumeUse(ctx context.Context, id, appointmentID string, usedAt time.Time) (bool, error) {
	query := `
		UPDATE booking_links
		SET use_count = use_count + 1,
			appointment_id = $2,
			used_at = $3,
			status = CASE WHEN use_count + 1 >= max_uses THEN 'used' ELSE status END,
			updated_at = $3
		WHERE id = $1 AND status = 'active' AND use_count < max_uses
	`

	tag, err := r.querier().Exec(ctx, query, id, appointmentID, usedAt)
	if err != nil {
		return false, fmt.Errorf("failed to consume booking link use: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkRevoked implements bookinglink.Repository.
func (r *bookingLinkRepositoryImpl) MarkRevoked(ctx context.Context, id string) error {
	query := `
		UPDATE booking_links
		SET status = 'revoked', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`

	tag, err := r.querier().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to revoke booking link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bookinglink.ErrCannotRevokeUsed
	}

	return nil
}

func (r *bookingLinkRepositoryImpl) scanOne(row pgx.Row, msg string) (bookinglink.BookingLink, error) {
	link, err := scanBookingLink(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return bookinglink.BookingLink{}, bookinglink.ErrLinkNotFound
		}
		return bookinglink.BookingLink{}, fmt.Errorf("%s: %w", msg, err)
	}
	return link, nil
}

func scanBookingLink(row pgx.Row) (bookinglink.BookingLink, error) {
	var link bookinglink.BookingLink
	err := row.Scan(
		&link.ID, &link.TokenHash, &link.CandidateID, &link.CandidateName, &link.Email,
		&link.Type, &link.DurationMinutes, &link.JobTitle, &link.BranchID, &link.BranchName,
		&link.Status, &link.ExpiresAt, &link.MaxUses, &link.UseCount,
		&link.UsedAt, &link.AppointmentID, &link.CreatedAt, &link.CreatedBy, &link.UpdatedAt,
	)
	return link, err
}
