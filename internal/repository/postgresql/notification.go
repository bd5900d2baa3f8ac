package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/notification"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

// NewNotificationRepository creates a new fact repository instance
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

// CreateBatch implements notification.Repository.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, facts []*notification.Fact) error {
	if len(facts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notification_facts (id, type, candidate_id, appointment_id, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, fact := range facts {
		batch.Queue(query, fact.ID, fact.Type, fact.CandidateID, fact.AppointmentID, fact.Data, fact.CreatedAt)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range facts {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create facts batch: %w", err)
		}
	}

	return nil
}

// ListByCandidate implements notification.Repository.
func (r *notificationRepositoryImpl) ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*notification.Fact, error) {
	query := `
		SELECT id, type, candidate_id, appointment_id, data, created_at
		FROM notification_facts
		WHERE candidate_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, candidateID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}
	defer rows.Close()

	var facts []*notification.Fact
	for rows.Next() {
		var fact notification.Fact
		if err := rows.Scan(
			&fact.ID, &fact.Type, &fact.CandidateID, &fact.AppointmentID,
			&fact.Data, &fact.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}
		facts = append(facts, &fact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}

	return facts, nil
}
