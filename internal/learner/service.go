package learner

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"certform/internal/platform/metrics"
	dErrors "certform/pkg/domain-errors"
	"certform/pkg/platform/sentinel"
	"certform/pkg/requestcontext"
)

// bcryptCost mirrors the cost the existing password hashes were created with.
const bcryptCost = 10

// ProgressRegistrar creates the empty progress record when an account is
// created. Narrow interface so this package stays decoupled from the
// progress internals.
type ProgressRegistrar interface {
	Register(ctx context.Context, tenant, email string) error
}

// TokenIssuer signs access tokens at login.
type TokenIssuer interface {
	GenerateAccessToken(email, tenant string, expiresIn time.Duration) (string, error)
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName"`
	Password    string `json:"password"`
}

// LoginResult is what a successful login returns to the client.
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// Service orchestrates registration and login. Password hashing stays here;
// stores only ever see the hash.
type Service struct {
	store    Store
	progress ProgressRegistrar
	tokens   TokenIssuer
	tokenTTL time.Duration
	metrics  *metrics.Metrics
}

func NewService(store Store, progress ProgressRegistrar, tokens TokenIssuer, tokenTTL time.Duration, m *metrics.Metrics) *Service {
	return &Service{store: store, progress: progress, tokens: tokens, tokenTTL: tokenTTL, metrics: m}
}

// Register validates the form, creates the account and initializes the
// learner's progress record with all stages at zero.
func (s *Service) Register(ctx context.Context, tenant string, in RegisterInput) (Learner, error) {
	if err := validateRegistration(in); err != nil {
		return Learner{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return Learner{}, dErrors.Wrap(dErrors.CodeInternal, "hash password", err)
	}

	l := Learner{
		Tenant:       tenant,
		Email:        in.Email,
		FullName:     in.FullName,
		CompanyName:  in.CompanyName,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, l); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Learner{}, dErrors.Wrap(dErrors.CodeConflict, conflictMessage(err), err)
		}
		return Learner{}, dErrors.Wrap(dErrors.CodeUnavailable, "learner store unavailable", err)
	}

	if err := s.progress.Register(ctx, tenant, in.Email); err != nil {
		return Learner{}, err
	}

	s.metrics.IncrementLearnersCreated()
	return l, nil
}

// Login checks credentials and issues an access token carrying the learner's
// email and tenant. Unknown email and wrong password are indistinguishable
// to the caller.
func (s *Service) Login(ctx context.Context, tenant, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}

	l, err := s.store.GetByEmail(ctx, tenant, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return LoginResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return LoginResult{}, dErrors.Wrap(dErrors.CodeUnavailable, "learner store unavailable", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(l.Email, l.Tenant, s.tokenTTL)
	if err != nil {
		return LoginResult{}, dErrors.Wrap(dErrors.CodeInternal, "issue token", err)
	}
	return LoginResult{Token: token, ExpiresIn: s.tokenTTL}, nil
}

// Profile returns the certificate-facing subset of the account.
func (s *Service) Profile(ctx context.Context, tenant, email string) (Profile, error) {
	l, err := s.store.GetByEmail(ctx, tenant, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Profile{}, dErrors.Wrap(dErrors.CodeNotFound, "no such learner", err)
		}
		return Profile{}, dErrors.Wrap(dErrors.CodeUnavailable, "learner store unavailable", err)
	}
	return Profile{FullName: l.FullName, CompanyName: l.CompanyName}, nil
}

func validateRegistration(in RegisterInput) error {
	switch {
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return dErrors.New(dErrors.CodeBadRequest, "a valid email is required")
	case in.FullName == "" || len(in.FullName) > 100:
		return dErrors.New(dErrors.CodeBadRequest, "full name is required and must be at most 100 characters")
	case in.CompanyName == "":
		return dErrors.New(dErrors.CodeBadRequest, "company name is required")
	case len(in.Password) < 8:
		return dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters")
	default:
		return nil
	}
}

// conflictMessage keeps the store's email/company distinction without
// exposing the raw error chain.
func conflictMessage(err error) string {
	if strings.Contains(err.Error(), "company") {
		return "company name already registered"
	}
	return "email already registered"
}
