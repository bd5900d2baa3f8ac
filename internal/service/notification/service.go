package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/flowhire/scheduling-backend-go/internal/domain/notification"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/metrics"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/validator"
)

const (
	queueSize     = 256
	batchSize     = 32
	flushInterval = 2 * time.Second
)

type service struct {
	repo  domain.Repository
	queue chan *domain.Fact
	wg    sync.WaitGroup
	once  sync.Once
	now   func() time.Time
}

// NewService creates the fact dispatcher. Facts are queued and persisted by a
// background worker so emitters never block on storage; the queue dropping a
// fact under sustained backpressure is accepted and logged.
func NewService(repo domain.Repository, now func() time.Time) domain.Service {
	if now == nil {
		now = time.Now
	}
	s := &service{
		repo:  repo,
		queue: make(chan *domain.Fact, queueSize),
		now:   now,
	}
	s.wg.Add(1)
	go s.worker()
	return s
}

func (s *service) Emit(ctx context.Context, fact domain.Fact) error {
	if !validator.IsInSlice(string(fact.Type), factTypeValues()) {
		return domain.ErrInvalidFactType
	}

	if fact.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		fact.ID = id.String()
	}
	if fact.CreatedAt.IsZero() {
		fact.CreatedAt = s.now()
	}

	select {
	case s.queue <- &fact:
		metrics.FactsEmittedTotal.WithLabelValues(string(fact.Type)).Inc()
		return nil
	default:
		slog.Warn("Fact queue full, dropping fact",
			"type", string(fact.Type),
			"candidate_id", fact.CandidateID)
		return domain.ErrQueueFull
	}
}

func (s *service) ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*domain.Fact, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByCandidate(ctx, candidateID, limit)
}

// Stop closes the queue and waits for the worker to drain it
func (s *service) Stop() {
	s.once.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

// worker drains the queue in batches so a burst of facts costs one round trip
// instead of one insert per fact. Partial batches flush on a timer and when
// the queue closes.
func (s *service) worker() {
	defer s.wg.Done()

	batch := make([]*domain.Fact, 0, batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			slog.Error("Failed to persist facts",
				"count", len(batch),
				"error", err)
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case fact, ok := <-s.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, fact)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func factTypeValues() []string {
	types := domain.AllFactTypes()
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}
