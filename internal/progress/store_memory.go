package progress

import (
	"context"
	"sync"
	"time"

	"certform/pkg/platform/sentinel"
)

type recordKey struct {
	tenant string
	email  string
}

// InMemoryStore keeps progress records in a map. It is the default store for
// local runs and tests; it intentionally favors clarity over performance.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[recordKey]*Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[recordKey]*Record)}
}

func (s *InMemoryStore) Create(_ context.Context, tenant, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{tenant: tenant, email: email}
	if _, ok := s.records[key]; ok {
		return nil
	}
	s.records[key] = &Record{Tenant: tenant, Email: email}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, tenant, email string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordKey{tenant: tenant, email: email}]
	if !ok {
		return Record{}, sentinel.ErrNotFound
	}
	return *rec, nil
}

func (s *InMemoryStore) SetVideoFlags(_ context.Context, tenant, email string, video1, video2 *bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordKey{tenant: tenant, email: email}]
	if !ok {
		return sentinel.ErrNotFound
	}
	if video1 != nil {
		rec.Video1 = *video1
	}
	if video2 != nil {
		rec.Video2 = *video2
	}
	return nil
}

func (s *InMemoryStore) SetScore(_ context.Context, tenant, email string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordKey{tenant: tenant, email: email}]
	if !ok {
		return sentinel.ErrNotFound
	}
	rec.QuizScore = &score
	return nil
}

func (s *InMemoryStore) SetAnswers(_ context.Context, tenant, email string, answers Answers) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordKey{tenant: tenant, email: email}]
	if !ok {
		return sentinel.ErrNotFound
	}
	rec.Answers = answers
	return nil
}

func (s *InMemoryStore) IssueAttestation(_ context.Context, tenant, email string, at time.Time) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordKey{tenant: tenant, email: email}]
	if !ok {
		return time.Time{}, false, sentinel.ErrNotFound
	}
	// Check-and-set under the store lock: the first caller stamps the date,
	// every later caller gets that same date back.
	if rec.AttestationIssued {
		return *rec.AttestationDate, false, nil
	}
	rec.AttestationIssued = true
	stamped := at
	rec.AttestationDate = &stamped
	return stamped, true, nil
}
