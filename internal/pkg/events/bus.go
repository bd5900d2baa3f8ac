package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CandidateStatusChanged is published on every candidate status update.
// Handlers run asynchronously relative to the triggering write and must
// tolerate at-least-once delivery.
type CandidateStatusChanged struct {
	CandidateID string
	OldStatus   string
	NewStatus   string
	OccurredAt  time.Time
}

// Handler receives a candidate status change event
type Handler func(ctx context.Context, ev CandidateStatusChanged)

// Bus is an in-process dispatcher for candidate status change events
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	wg       sync.WaitGroup
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for candidate status change events
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every subscribed handler, each on its own
// goroutine. Publish never blocks the caller and a panicking handler does
// not take down the process.
func (b *Bus) Publish(ev CandidateStatusChanged) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Event handler panicked",
						"candidate_id", ev.CandidateID,
						"new_status", ev.NewStatus,
						"panic", r)
				}
			}()
			h(context.Background(), ev)
		}(h)
	}
}

// Wait blocks until all in-flight handlers have finished
func (b *Bus) Wait() {
	b.wg.Wait()
}
