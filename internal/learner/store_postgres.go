package learner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"certform/pkg/platform/sentinel"
)

// PostgresStore persists learner accounts in the learners table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, l Learner) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO learners (tenant, email, full_name, company_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.Tenant, l.Email, l.FullName, l.CompanyName, l.PasswordHash, l.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "company") {
				return fmt.Errorf("company name already registered: %w", sentinel.ErrConflict)
			}
			return fmt.Errorf("email already registered: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create learner: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, tenant, email string) (Learner, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT tenant, email, full_name, company_name, password_hash, created_at
		FROM learners
		WHERE tenant = $1 AND email = $2`,
		tenant, email)

	var l Learner
	err := row.Scan(&l.Tenant, &l.Email, &l.FullName, &l.CompanyName, &l.PasswordHash, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Learner{}, sentinel.ErrNotFound
		}
		return Learner{}, fmt.Errorf("get learner: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return l, nil
}
