package candidate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/flowhire/scheduling-backend-go/internal/domain/candidate"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/events"
)

type fakeRepo struct {
	candidates map[string]domain.Candidate
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (domain.Candidate, error) {
	cand, ok := r.candidates[id]
	if !ok {
		return domain.Candidate{}, domain.ErrCandidateNotFound
	}
	return cand, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Status, error) {
	cand, ok := r.candidates[id]
	if !ok {
		return "", domain.ErrCandidateNotFound
	}
	old := cand.Status
	cand.Status = status
	r.candidates[id] = cand
	return old, nil
}

func (r *fakeRepo) MarkNoShow(ctx context.Context, id string, at time.Time) error {
	cand := r.candidates[id]
	cand.LastNoShowAt = &at
	r.candidates[id] = cand
	return nil
}

func TestUpdateStatusPublishesChange(t *testing.T) {
	repo := &fakeRepo{candidates: map[string]domain.Candidate{
		"cand-1": {ID: "cand-1", Status: domain.StatusNew},
	}}
	bus := events.NewBus()

	var mu sync.Mutex
	var received []events.CandidateStatusChanged
	bus.Subscribe(func(ctx context.Context, ev events.CandidateStatusChanged) {
		mu.Lock()
		received = append(received, ev)
		mu.Unlock()
	})

	frozen := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	svc := NewService(repo, bus, func() time.Time { return frozen })

	resp, err := svc.UpdateStatus(context.Background(), "cand-1", "rejected")
	require.NoError(t, err)
	assert.Equal(t, "new", resp.OldStatus)
	assert.Equal(t, "rejected", resp.NewStatus)

	bus.Wait()
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "cand-1", received[0].CandidateID)
	assert.Equal(t, "new", received[0].OldStatus)
	assert.Equal(t, "rejected", received[0].NewStatus)
	assert.Equal(t, frozen, received[0].OccurredAt)
}

func TestUpdateStatusSameValueDoesNotPublish(t *testing.T) {
	repo := &fakeRepo{candidates: map[string]domain.Candidate{
		"cand-1": {ID: "cand-1", Status: domain.StatusScreening},
	}}
	bus := events.NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(ctx context.Context, ev events.CandidateStatusChanged) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	svc := NewService(repo, bus, nil)

	_, err := svc.UpdateStatus(context.Background(), "cand-1", "screening")
	require.NoError(t, err)

	bus.Wait()
	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, count)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo := &fakeRepo{candidates: map[string]domain.Candidate{
		"cand-1": {ID: "cand-1", Status: domain.StatusNew},
	}}
	svc := NewService(repo, events.NewBus(), nil)

	_, err := svc.UpdateStatus(context.Background(), "cand-1", "ghosted")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, domain.StatusNew, repo.candidates["cand-1"].Status)
}

func TestUpdateStatusUnknownCandidate(t *testing.T) {
	repo := &fakeRepo{candidates: map[string]domain.Candidate{}}
	svc := NewService(repo, events.NewBus(), nil)

	_, err := svc.UpdateStatus(context.Background(), "missing", "rejected")
	assert.ErrorIs(t, err, domain.ErrCandidateNotFound)
}
