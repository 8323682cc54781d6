package progress

import (
	"context"
	"time"
)

// Store is the durable home of progress records. Implementations return
// sentinel errors (pkg/platform/sentinel) for infrastructure facts; the
// services translate them into domain errors.
//
// Concurrency contract: each mutation touches one slice of the record and may
// interleave freely with writes to other slices. IssueAttestation is the one
// operation needing store-enforced mutual exclusion — concurrent qualifying
// calls must persist exactly one attestation date. In-process locking is not
// enough once handlers run in parallel across processes, so the exclusion
// lives in the store (conditional update), not in the service.
type Store interface {
	// Create initializes an empty record at registration. Creating an
	// existing record is a no-op so registration retries stay idempotent.
	Create(ctx context.Context, tenant, email string) error

	// Get returns a snapshot of the record.
	Get(ctx context.Context, tenant, email string) (Record, error)

	// SetVideoFlags applies a partial update: only non-nil flags change.
	SetVideoFlags(ctx context.Context, tenant, email string, video1, video2 *bool) error

	// SetScore overwrites the quiz score unconditionally (last write wins,
	// no history retained).
	SetScore(ctx context.Context, tenant, email string, score int) error

	// SetAnswers replaces all nine questionnaire fields as one write.
	SetAnswers(ctx context.Context, tenant, email string, answers Answers) error

	// IssueAttestation flips the attestation flag and stamps the date, but
	// only if the record is not already issued. Returns the stored date and
	// whether this call performed the issuance; on a lost race the winner's
	// date comes back with issued=false.
	IssueAttestation(ctx context.Context, tenant, email string, at time.Time) (time.Time, bool, error)
}
