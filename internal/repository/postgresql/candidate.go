package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/candidate"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/database"
)

type candidateRepositoryImpl struct {
	db *database.DB
}

// NewCandidateRepository creates a new candidate repository instance
func NewCandidateRepository(db *database.DB) candidate.Repository {
	return &candidateRepositoryImpl{db: db}
}

// GetByID implements candidate.Repository.
func (r *candidateRepositoryImpl) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	query := `
		SELECT id, full_name, email, status, last_no_show_at, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`

	var cand candidate.Candidate
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&cand.ID, &cand.FullName, &cand.Email, &cand.Status,
		&cand.LastNoShowAt, &cand.CreatedAt, &cand.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return candidate.Candidate{}, candidate.ErrCandidateNotFound
		}
		return candidate.Candidate{}, fmt.Errorf("failed to get candidate: %w", err)
	}

	return cand, nil
}

// UpdateStatus implements candidate.Repository. The previous status is
// captured in the same statement so callers can tell a real change from a
// redundant write.
func (r *candidateRepositoryImpl) UpdateStatus(ctx context.Context, id string, status candidate.Status) (candidate.Status, error) {
	query := `
		UPDATE candidates c
		SET status = $2, updated_at = NOW()
		FROM (SELECT id, status FROM candidates WHERE id = $1 FOR UPDATE) old
		WHERE c.id = old.id
		RETURNING old.status
	`

	var previous candidate.Status
	err := r.db.Pool.QueryRow(ctx, query, id, status).Scan(&previous)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", candidate.ErrCandidateNotFound
		}
		return "", fmt.Errorf("failed to update candidate status: %w", err)
	}

	return previous, nil
}

// MarkNoShow implements candidate.Repository.
func (r *candidateRepositoryImpl) MarkNoShow(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE candidates
		SET last_no_show_at = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark candidate no-show: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return candidate.ErrCandidateNotFound
	}

	return nil
}
