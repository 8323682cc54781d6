package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"certform/pkg/platform/sentinel"
)

// PostgresStore persists progress records in the training_progress table.
// One table serves every tenant; the tenant column is part of the key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const recordColumns = `tenant, email, video1, video2, quiz_score,
	dispositif, engagement, identification, formation, "procedure",
	dispositif_alert, certifier_iso, mep_system, intention,
	attestation_issued, attestation_date`

func (s *PostgresStore) Create(ctx context.Context, tenant, email string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO training_progress (tenant, email)
		VALUES ($1, $2)
		ON CONFLICT (tenant, email) DO NOTHING`,
		tenant, email)
	if err != nil {
		return storeErr("create progress record", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, tenant, email string) (Record, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM training_progress
		WHERE tenant = $1 AND email = $2`,
		tenant, email)

	var rec Record
	err := row.Scan(
		&rec.Tenant, &rec.Email, &rec.Video1, &rec.Video2, &rec.QuizScore,
		&rec.Answers.Dispositif, &rec.Answers.Engagement, &rec.Answers.Identification,
		&rec.Answers.Formation, &rec.Answers.Procedure, &rec.Answers.DispositifAlert,
		&rec.Answers.CertifierISO, &rec.Answers.MepSystem, &rec.Answers.Intention,
		&rec.AttestationIssued, &rec.AttestationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, storeErr("get progress record", err)
	}
	return rec, nil
}

func (s *PostgresStore) SetVideoFlags(ctx context.Context, tenant, email string, video1, video2 *bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE training_progress
		SET video1 = COALESCE($3, video1),
		    video2 = COALESCE($4, video2)
		WHERE tenant = $1 AND email = $2`,
		tenant, email, video1, video2)
	if err != nil {
		return storeErr("set video flags", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SetScore(ctx context.Context, tenant, email string, score int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE training_progress
		SET quiz_score = $3
		WHERE tenant = $1 AND email = $2`,
		tenant, email, score)
	if err != nil {
		return storeErr("set quiz score", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SetAnswers(ctx context.Context, tenant, email string, answers Answers) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE training_progress
		SET dispositif = $3, engagement = $4, identification = $5,
		    formation = $6, "procedure" = $7, dispositif_alert = $8,
		    certifier_iso = $9, mep_system = $10, intention = $11
		WHERE tenant = $1 AND email = $2`,
		tenant, email,
		answers.Dispositif, answers.Engagement, answers.Identification,
		answers.Formation, answers.Procedure, answers.DispositifAlert,
		answers.CertifierISO, answers.MepSystem, answers.Intention)
	if err != nil {
		return storeErr("set questionnaire answers", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// IssueAttestation performs the conditional update that makes issuance a
// one-shot transition across processes: only a row with attestation_issued =
// FALSE is updated, so two concurrent qualifying calls persist exactly one
// date and the loser reads the winner's.
func (s *PostgresStore) IssueAttestation(ctx context.Context, tenant, email string, at time.Time) (time.Time, bool, error) {
	var stamped time.Time
	err := s.pool.QueryRow(ctx, `
		UPDATE training_progress
		SET attestation_issued = TRUE, attestation_date = $3
		WHERE tenant = $1 AND email = $2 AND attestation_issued = FALSE
		RETURNING attestation_date`,
		tenant, email, at).Scan(&stamped)
	if err == nil {
		return stamped, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, storeErr("issue attestation", err)
	}

	// Zero rows: either the record is missing or someone issued first.
	var existing *time.Time
	err = s.pool.QueryRow(ctx, `
		SELECT attestation_date
		FROM training_progress
		WHERE tenant = $1 AND email = $2 AND attestation_issued = TRUE`,
		tenant, email).Scan(&existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, sentinel.ErrNotFound
		}
		return time.Time{}, false, storeErr("issue attestation", err)
	}
	if existing == nil {
		// Flag and date are written together; an issued row without a date
		// would violate the record invariant.
		return time.Time{}, false, storeErr("issue attestation", errors.New("issued record missing date"))
	}
	return *existing, false, nil
}

// storeErr tags driver failures as transient so callers can classify them as
// retryable without string matching.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(sentinel.ErrUnavailable, err))
}
