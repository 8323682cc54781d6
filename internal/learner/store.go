package learner

import "context"

// Store persists learner accounts. Implementations return sentinel errors:
// ErrNotFound for unknown learners, ErrConflict when email or company name is
// already taken within the tenant.
type Store interface {
	Create(ctx context.Context, l Learner) error
	GetByEmail(ctx context.Context, tenant, email string) (Learner, error)
}
