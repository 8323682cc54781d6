package learner

import (
	"context"
	"fmt"
	"sync"

	"certform/pkg/platform/sentinel"
)

type accountKey struct {
	tenant string
	email  string
}

// InMemoryStore keeps learner accounts in a map for local runs and tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[accountKey]Learner
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{accounts: make(map[accountKey]Learner)}
}

func (s *InMemoryStore) Create(_ context.Context, l Learner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := accountKey{tenant: l.Tenant, email: l.Email}
	if _, ok := s.accounts[key]; ok {
		return fmt.Errorf("email already registered: %w", sentinel.ErrConflict)
	}
	for _, existing := range s.accounts {
		if existing.Tenant == l.Tenant && existing.CompanyName == l.CompanyName {
			return fmt.Errorf("company name already registered: %w", sentinel.ErrConflict)
		}
	}
	s.accounts[key] = l
	return nil
}

func (s *InMemoryStore) GetByEmail(_ context.Context, tenant, email string) (Learner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.accounts[accountKey{tenant: tenant, email: email}]
	if !ok {
		return Learner{}, sentinel.ErrNotFound
	}
	return l, nil
}
