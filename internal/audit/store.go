package audit

import (
	"context"
	"sync"
)

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByLearner(ctx context.Context, tenant, learner string) ([]Event, error)
}

// InMemoryStore keeps events per learner. It backs local runs and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := event.Tenant + "/" + event.Learner
	s.events[key] = append(s.events[key], event)
	return nil
}

func (s *InMemoryStore) ListByLearner(_ context.Context, tenant, learner string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := tenant + "/" + learner
	return append([]Event{}, s.events[key]...), nil
}
