//go:build integration

package progress_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"certform/internal/platform/postgres"
	"certform/internal/progress"
	"certform/pkg/platform/sentinel"
	"certform/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *containers.PostgresContainer
	store     *progress.PostgresStore
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
	s.store = progress.NewPostgresStore(s.container.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.container.TruncateTables(s.ctx, "training_progress"))
}

func strPtr(v string) *string { return &v }

func fullAnswers() progress.Answers {
	return progress.Answers{
		Dispositif:      strPtr("Oui"),
		Engagement:      strPtr("Oui"),
		Identification:  strPtr("Non"),
		Formation:       strPtr("Oui"),
		Procedure:       strPtr("Non"),
		DispositifAlert: strPtr("Oui"),
		CertifierISO:    strPtr("Non"),
		MepSystem:       strPtr("2024-01-15"),
		Intention:       strPtr("Oui"),
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	s.Require().NoError(s.store.Create(s.ctx, "congo", "rt@example.com"))

	watched := true
	s.Require().NoError(s.store.SetVideoFlags(s.ctx, "congo", "rt@example.com", &watched, nil))
	s.Require().NoError(s.store.SetScore(s.ctx, "congo", "rt@example.com", 8))
	s.Require().NoError(s.store.SetAnswers(s.ctx, "congo", "rt@example.com", fullAnswers()))

	rec, err := s.store.Get(s.ctx, "congo", "rt@example.com")
	s.Require().NoError(err)
	s.True(rec.Video1)
	s.False(rec.Video2)
	s.Equal(8, *rec.QuizScore)
	s.True(rec.Answers.Complete())
	s.Equal("Non", *rec.Answers.Procedure)
	s.False(rec.AttestationIssued)
}

func (s *PostgresStoreSuite) TestCreateIsIdempotent() {
	s.Require().NoError(s.store.Create(s.ctx, "congo", "idem@example.com"))
	s.Require().NoError(s.store.SetScore(s.ctx, "congo", "idem@example.com", 6))

	s.Require().NoError(s.store.Create(s.ctx, "congo", "idem@example.com"))

	rec, err := s.store.Get(s.ctx, "congo", "idem@example.com")
	s.Require().NoError(err)
	s.Equal(6, *rec.QuizScore)
}

func (s *PostgresStoreSuite) TestMissingRecordErrors() {
	_, err := s.store.Get(s.ctx, "congo", "ghost@example.com")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.SetScore(s.ctx, "congo", "ghost@example.com", 5), sentinel.ErrNotFound)

	watched := true
	s.ErrorIs(s.store.SetVideoFlags(s.ctx, "congo", "ghost@example.com", &watched, nil), sentinel.ErrNotFound)

	_, _, err = s.store.IssueAttestation(s.ctx, "congo", "ghost@example.com", time.Now())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestTenantIsolation() {
	s.Require().NoError(s.store.Create(s.ctx, "congo", "dual@example.com"))
	s.Require().NoError(s.store.Create(s.ctx, "senegal", "dual@example.com"))
	s.Require().NoError(s.store.SetScore(s.ctx, "congo", "dual@example.com", 9))

	rec, err := s.store.Get(s.ctx, "senegal", "dual@example.com")
	s.Require().NoError(err)
	s.Nil(rec.QuizScore)
}

// TestConcurrentIssuance verifies that concurrent issuance attempts persist
// exactly one attestation date.
func (s *PostgresStoreSuite) TestConcurrentIssuance() {
	s.Require().NoError(s.store.Create(s.ctx, "congo", "race@example.com"))

	const goroutines = 50
	var wg sync.WaitGroup
	var firstIssues atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			at := time.Now().UTC().Add(time.Duration(idx) * time.Millisecond)
			_, issued, err := s.store.IssueAttestation(s.ctx, "congo", "race@example.com", at)
			s.NoError(err)
			if issued {
				firstIssues.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), firstIssues.Load(), "exactly one attempt should perform the issuance")

	rec, err := s.store.Get(s.ctx, "congo", "race@example.com")
	s.Require().NoError(err)
	s.True(rec.AttestationIssued)
	s.NotNil(rec.AttestationDate)
}

func (s *PostgresStoreSuite) TestReplayKeepsOriginalDate() {
	s.Require().NoError(s.store.Create(s.ctx, "congo", "replay@example.com"))

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	date, issued, err := s.store.IssueAttestation(s.ctx, "congo", "replay@example.com", first)
	s.Require().NoError(err)
	s.True(issued)
	s.Equal(first, date.UTC())

	date, issued, err = s.store.IssueAttestation(s.ctx, "congo", "replay@example.com", first.Add(48*time.Hour))
	s.Require().NoError(err)
	s.False(issued)
	s.Equal(first, date.UTC())
}
