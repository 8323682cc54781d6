package learner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	dErrors "certform/pkg/domain-errors"
)

type registrarStub struct {
	calls []string
	err   error
}

func (r *registrarStub) Register(_ context.Context, tenant, email string) error {
	r.calls = append(r.calls, tenant+"/"+email)
	return r.err
}

type issuerStub struct {
	token string
	err   error
}

func (i *issuerStub) GenerateAccessToken(string, string, time.Duration) (string, error) {
	return i.token, i.err
}

type ServiceSuite struct {
	suite.Suite
	store     *InMemoryStore
	registrar *registrarStub
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.registrar = &registrarStub{}
	s.service = NewService(s.store, s.registrar, &issuerStub{token: "signed-token"}, 12*time.Hour, nil)
	s.ctx = context.Background()
}

func validInput(email string) RegisterInput {
	return RegisterInput{
		Email:       email,
		FullName:    "Marie Ndiaye",
		CompanyName: "Acme " + email,
		Password:    "correct horse battery",
	}
}

func (s *ServiceSuite) TestRegister() {
	s.Run("creates the account and its progress record", func() {
		created, err := s.service.Register(s.ctx, "congo", validInput("new@example.com"))
		s.Require().NoError(err)
		s.Equal("congo", created.Tenant)
		s.Equal("new@example.com", created.Email)
		s.Contains(s.registrar.calls, "congo/new@example.com")
	})

	s.Run("stores a hash, never the password", func() {
		in := validInput("hash@example.com")
		_, err := s.service.Register(s.ctx, "congo", in)
		s.Require().NoError(err)

		stored, err := s.store.GetByEmail(s.ctx, "congo", "hash@example.com")
		s.Require().NoError(err)
		s.NotEqual(in.Password, stored.PasswordHash)
		s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(in.Password)))
	})

	s.Run("rejects invalid input before touching the store", func() {
		cases := []RegisterInput{
			{},
			{Email: "not-an-email", FullName: "X", CompanyName: "Y", Password: "longenough"},
			{Email: "a@b.c", FullName: "", CompanyName: "Y", Password: "longenough"},
			{Email: "a@b.c", FullName: "X", CompanyName: "", Password: "longenough"},
			{Email: "a@b.c", FullName: "X", CompanyName: "Y", Password: "short"},
		}
		for _, in := range cases {
			_, err := s.service.Register(s.ctx, "congo", in)
			s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest), "input %+v", in)
		}
	})

	s.Run("duplicate email conflicts", func() {
		_, err := s.service.Register(s.ctx, "congo", validInput("dup@example.com"))
		s.Require().NoError(err)

		in := validInput("dup@example.com")
		in.CompanyName = "Different SARL"
		_, err = s.service.Register(s.ctx, "congo", in)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(dErrors.Message(err), "email")
	})

	s.Run("duplicate company name conflicts", func() {
		first := validInput("c1@example.com")
		first.CompanyName = "Unique SARL"
		_, err := s.service.Register(s.ctx, "congo", first)
		s.Require().NoError(err)

		second := validInput("c2@example.com")
		second.CompanyName = "Unique SARL"
		_, err = s.service.Register(s.ctx, "congo", second)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(dErrors.Message(err), "company")
	})

	s.Run("same email registers independently under another tenant", func() {
		_, err := s.service.Register(s.ctx, "congo", validInput("both@example.com"))
		s.Require().NoError(err)

		_, err = s.service.Register(s.ctx, "senegal", validInput("both@example.com"))
		s.Require().NoError(err)
	})
}

func (s *ServiceSuite) TestLogin() {
	s.Run("valid credentials yield a token", func() {
		in := validInput("login@example.com")
		_, err := s.service.Register(s.ctx, "congo", in)
		s.Require().NoError(err)

		result, err := s.service.Login(s.ctx, "congo", in.Email, in.Password)
		s.Require().NoError(err)
		s.Equal("signed-token", result.Token)
		s.Equal(12*time.Hour, result.ExpiresIn)
	})

	s.Run("wrong password and unknown email are indistinguishable", func() {
		in := validInput("secret@example.com")
		_, err := s.service.Register(s.ctx, "congo", in)
		s.Require().NoError(err)

		_, wrongPass := s.service.Login(s.ctx, "congo", in.Email, "not the password")
		_, unknown := s.service.Login(s.ctx, "congo", "nobody@example.com", "whatever")

		s.Require().True(dErrors.HasCode(wrongPass, dErrors.CodeUnauthorized))
		s.Require().True(dErrors.HasCode(unknown, dErrors.CodeUnauthorized))
		s.Equal(dErrors.Message(wrongPass), dErrors.Message(unknown))
	})

	s.Run("missing fields are a bad request", func() {
		_, err := s.service.Login(s.ctx, "congo", "", "pw")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("credentials do not leak across tenants", func() {
		in := validInput("scoped@example.com")
		_, err := s.service.Register(s.ctx, "congo", in)
		s.Require().NoError(err)

		_, err = s.service.Login(s.ctx, "senegal", in.Email, in.Password)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *ServiceSuite) TestProfile() {
	s.Run("returns the certificate-facing fields", func() {
		in := validInput("profile@example.com")
		_, err := s.service.Register(s.ctx, "congo", in)
		s.Require().NoError(err)

		profile, err := s.service.Profile(s.ctx, "congo", "profile@example.com")
		s.Require().NoError(err)
		s.Equal(in.FullName, profile.FullName)
		s.Equal(in.CompanyName, profile.CompanyName)
	})

	s.Run("unknown learner maps to not_found", func() {
		_, err := s.service.Profile(s.ctx, "congo", "ghost@example.com")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
