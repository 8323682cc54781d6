// Package attestation owns the one-shot certificate issuance transition and
// the certificate info read model. Rendering the PDF itself happens client
// side; this service only decides whether a certificate exists and for whom.
package attestation

import (
	"context"
	"errors"
	"strings"
	"time"

	"certform/internal/audit"
	"certform/internal/learner"
	"certform/internal/progress"
	"certform/internal/progress/metrics"
	"certform/internal/tenant"
	dErrors "certform/pkg/domain-errors"
	"certform/pkg/platform/sentinel"
	"certform/pkg/requestcontext"
)

// ProgressStore is the slice of the progress store issuance needs: a fresh
// snapshot for the server-side gate re-check, and the conditional update that
// makes issuance single-shot across processes.
type ProgressStore interface {
	Get(ctx context.Context, tenant, email string) (progress.Record, error)
	IssueAttestation(ctx context.Context, tenant, email string, at time.Time) (time.Time, bool, error)
}

// ProfileDirectory resolves the names printed on the certificate.
type ProfileDirectory interface {
	Profile(ctx context.Context, tenant, email string) (learner.Profile, error)
}

// Info is the certificate read model for the attestation page.
type Info struct {
	Issued      bool            `json:"issued"`
	Date        *time.Time      `json:"date"`
	Learner     learner.Profile `json:"learner"`
	CourseTitle string          `json:"course_title"`
}

// Service guards the issuance gate. Preconditions are re-checked here from a
// fresh snapshot; a client-supplied "unlocked" flag is never trusted.
type Service struct {
	store    ProgressStore
	profiles ProfileDirectory
	tenants  *tenant.Catalog
	metrics  *metrics.Metrics
	audit    *audit.Publisher
}

func NewService(store ProgressStore, profiles ProfileDirectory, tenants *tenant.Catalog, m *metrics.Metrics, auditPub *audit.Publisher) *Service {
	return &Service{store: store, profiles: profiles, tenants: tenants, metrics: m, audit: auditPub}
}

// Issue performs the one-shot transition. The first qualifying call stamps
// the attestation date; every subsequent call returns that same date without
// re-stamping. Unqualified calls fail without touching the record.
func (s *Service) Issue(ctx context.Context, tenantID, email string) (time.Time, error) {
	rec, err := s.store.Get(ctx, tenantID, email)
	if err != nil {
		return time.Time{}, translate(err)
	}

	status := progress.Evaluate(rec, s.passThreshold(tenantID))
	if !progress.Allow(status).CertificateUnlocked {
		s.metrics.RecordIssuanceRefusal()
		return time.Time{}, dErrors.New(dErrors.CodePreconditionFailed,
			"certificate prerequisites not met: "+strings.Join(progress.MissingStages(status), ", "))
	}

	date, issued, err := s.store.IssueAttestation(ctx, tenantID, email, requestcontext.Now(ctx))
	if err != nil {
		return time.Time{}, translate(err)
	}
	if issued {
		s.metrics.RecordAttestationIssued()
		s.audit.Emit(ctx, audit.Event{
			Tenant:  tenantID,
			Learner: email,
			Action:  audit.ActionAttestationIssued,
		})
	}
	return date, nil
}

// Info assembles the certificate page data: issuance state plus the names
// and course title to render.
func (s *Service) Info(ctx context.Context, tenantID, email string) (Info, error) {
	rec, err := s.store.Get(ctx, tenantID, email)
	if err != nil {
		return Info{}, translate(err)
	}
	profile, err := s.profiles.Profile(ctx, tenantID, email)
	if err != nil {
		return Info{}, err
	}

	courseTitle := ""
	if cfg, ok := s.tenants.Get(tenantID); ok {
		courseTitle = cfg.CourseTitle
	}
	return Info{
		Issued:      rec.AttestationIssued,
		Date:        rec.AttestationDate,
		Learner:     profile,
		CourseTitle: courseTitle,
	}, nil
}

func (s *Service) passThreshold(tenantID string) int {
	if cfg, ok := s.tenants.Get(tenantID); ok {
		return cfg.PassThreshold
	}
	return tenant.DefaultPassThreshold
}

func translate(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(dErrors.CodeNotFound, "no such learner", err)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(dErrors.CodeUnavailable, "progress store unavailable", err)
	default:
		return dErrors.Wrap(dErrors.CodeInternal, "attestation operation failed", err)
	}
}
