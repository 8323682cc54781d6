//go:build integration

package learner_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"certform/internal/learner"
	"certform/internal/platform/postgres"
	"certform/pkg/platform/sentinel"
	"certform/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *containers.PostgresContainer
	store     *learner.PostgresStore
	ctx       context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.EnsureSchema(s.ctx, s.container.Pool))
	s.store = learner.NewPostgresStore(s.container.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.container.TruncateTables(s.ctx, "learners"))
}

func newAccount(tenant, email string) learner.Learner {
	return learner.Learner{
		Tenant:       tenant,
		Email:        email,
		FullName:     "Marie Ndiaye",
		CompanyName:  "Acme " + email,
		PasswordHash: "$2a$10$" + uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	account := newAccount("congo", "a@example.com")
	s.Require().NoError(s.store.Create(s.ctx, account))

	found, err := s.store.GetByEmail(s.ctx, "congo", "a@example.com")
	s.Require().NoError(err)
	s.Equal(account.FullName, found.FullName)
	s.Equal(account.CompanyName, found.CompanyName)
	s.Equal(account.PasswordHash, found.PasswordHash)
}

func (s *PostgresStoreSuite) TestConflicts() {
	s.Require().NoError(s.store.Create(s.ctx, newAccount("congo", "dup@example.com")))

	err := s.store.Create(s.ctx, newAccount("congo", "dup@example.com"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	other := newAccount("congo", "other@example.com")
	other.CompanyName = "Acme dup@example.com"
	err = s.store.Create(s.ctx, other)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
	s.Contains(err.Error(), "company")
}

func (s *PostgresStoreSuite) TestSameEmailAcrossTenants() {
	s.Require().NoError(s.store.Create(s.ctx, newAccount("congo", "both@example.com")))
	s.Require().NoError(s.store.Create(s.ctx, newAccount("senegal", "both@example.com")))
}

func (s *PostgresStoreSuite) TestNotFound() {
	_, err := s.store.GetByEmail(s.ctx, "congo", "ghost@example.com")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentRegistration verifies that racing registrations of the same
// email yield exactly one account.
func (s *PostgresStoreSuite) TestConcurrentRegistration() {
	const goroutines = 30
	var wg sync.WaitGroup
	var successes atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.Create(s.ctx, newAccount("congo", "race@example.com")); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
}
