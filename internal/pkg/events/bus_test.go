package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversToAllHandlers(t *testing.T) {
	bus := NewBus()

	var first, second atomic.Int32
	bus.Subscribe(func(ctx context.Context, ev CandidateStatusChanged) {
		first.Add(1)
	})
	bus.Subscribe(func(ctx context.Context, ev CandidateStatusChanged) {
		second.Add(1)
	})

	bus.Publish(CandidateStatusChanged{
		CandidateID: "cand-1",
		OldStatus:   "new",
		NewStatus:   "withdrawn",
		OccurredAt:  time.Now(),
	})
	bus.Wait()

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestBusPayloadReachesHandler(t *testing.T) {
	bus := NewBus()

	got := make(chan CandidateStatusChanged, 1)
	bus.Subscribe(func(ctx context.Context, ev CandidateStatusChanged) {
		got <- ev
	})

	bus.Publish(CandidateStatusChanged{CandidateID: "cand-2", OldStatus: "new", NewStatus: "rejected"})
	bus.Wait()

	ev := <-got
	assert.Equal(t, "cand-2", ev.CandidateID)
	assert.Equal(t, "new", ev.OldStatus)
	assert.Equal(t, "rejected", ev.NewStatus)
}

func TestBusSurvivesPanickingHandler(t *testing.T) {
	bus := NewBus()

	var delivered atomic.Int32
	bus.Subscribe(func(ctx context.Context, ev CandidateStatusChanged) {
		panic("boom")
	})
	bus.Subscribe(func(ctx context.Context, ev CandidateStatusChanged) {
		delivered.Add(1)
	})

	bus.Publish(CandidateStatusChanged{CandidateID: "cand-3", NewStatus: "hired"})
	bus.Wait()

	assert.Equal(t, int32(1), delivered.Load())
}

func TestBusNoHandlers(t *testing.T) {
	bus := NewBus()
	// Publishing with no subscribers must not block or panic
	bus.Publish(CandidateStatusChanged{CandidateID: "cand-4"})
	bus.Wait()
}
