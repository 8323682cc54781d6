package progress

import (
	"context"
	"errors"
	"fmt"

	"certform/internal/audit"
	"certform/internal/progress/metrics"
	"certform/internal/tenant"
	dErrors "certform/pkg/domain-errors"
	"certform/pkg/platform/sentinel"
)

// maxQuizScore matches the ten-question quiz; submissions outside 0..10 are
// rejected before any write.
const maxQuizScore = 10

// VideoFlags is the video collector's read model.
type VideoFlags struct {
	Video1 bool `json:"video1"`
	Video2 bool `json:"video2"`
}

// ScoreStatus is the quiz collector's read model: the latest score plus the
// derived tri-state standing.
type ScoreStatus struct {
	Score    *int         `json:"score"`
	Standing QuizStanding `json:"standing"`
	Message  string       `json:"message"`
}

// Overview bundles the evaluator output and the gate decisions for the
// dashboard.
type Overview struct {
	Stages      StageStatus `json:"stages"`
	Permissions Permissions `json:"permissions"`
}

// Service exposes the four signal collectors over the progress store. Each
// collector mutates one slice of the record; after any mutation callers
// re-read the evaluator output, which is side-effect free.
type Service struct {
	store   Store
	tenants *tenant.Catalog
	metrics *metrics.Metrics
	audit   *audit.Publisher
}

func NewService(store Store, tenants *tenant.Catalog, m *metrics.Metrics, auditPub *audit.Publisher) *Service {
	return &Service{store: store, tenants: tenants, metrics: m, audit: auditPub}
}

// passThreshold looks up the tenant's quiz threshold; the catalog normalizes
// unset thresholds to the canonical default at registration time.
func (s *Service) passThreshold(tenantID string) int {
	if cfg, ok := s.tenants.Get(tenantID); ok {
		return cfg.PassThreshold
	}
	return tenant.DefaultPassThreshold
}

// Register initializes an empty progress record for a new learner.
func (s *Service) Register(ctx context.Context, tenantID, email string) error {
	return translate(s.store.Create(ctx, tenantID, email), "create progress record")
}

// VideoStatus returns both video flags.
func (s *Service) VideoStatus(ctx context.Context, tenantID, email string) (VideoFlags, error) {
	rec, err := s.store.Get(ctx, tenantID, email)
	if err != nil {
		return VideoFlags{}, translate(err, "read progress record")
	}
	return VideoFlags{Video1: rec.Video1, Video2: rec.Video2}, nil
}

// UpdateVideoFlags applies a partial update: only supplied flags change.
// Flags are monotonic, so writing false is a validation failure rather than a
// revert.
func (s *Service) UpdateVideoFlags(ctx context.Context, tenantID, email string, video1, video2 *bool) error {
	if video1 == nil && video2 == nil {
		return dErrors.New(dErrors.CodeBadRequest, "at least one video flag is required")
	}
	if (video1 != nil && !*video1) || (video2 != nil && !*video2) {
		return dErrors.New(dErrors.CodeBadRequest, "video flags never revert to unwatched")
	}
	return translate(s.store.SetVideoFlags(ctx, tenantID, email, video1, video2), "set video flags")
}

// QuizStatus returns the latest score and its standing. A learner who never
// attempted gets a neutral first-exam message, not a failure.
func (s *Service) QuizStatus(ctx context.Context, tenantID, email string) (ScoreStatus, error) {
	rec, err := s.store.Get(ctx, tenantID, email)
	if err != nil {
		return ScoreStatus{}, translate(err, "read progress record")
	}
	standing := StandingOf(rec.QuizScore, s.passThreshold(tenantID))
	return ScoreStatus{Score: rec.QuizScore, Standing: standing, Message: standing.Message()}, nil
}

// SubmitScore overwrites the quiz score. The previous attempt is gone from
// the record after this returns; only the audit trail remembers it.
func (s *Service) SubmitScore(ctx context.Context, tenantID, email string, score int) error {
	if score < 0 || score > maxQuizScore {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("score must be between 0 and %d", maxQuizScore))
	}
	if err := s.store.SetScore(ctx, tenantID, email, score); err != nil {
		return translate(err, "set quiz score")
	}

	standing := StandingOf(&score, s.passThreshold(tenantID))
	s.metrics.RecordScoreSubmission(string(standing))
	s.audit.Emit(ctx, audit.Event{
		Tenant:  tenantID,
		Learner: email,
		Action:  audit.ActionScoreSubmitted,
		Detail:  fmt.Sprintf("score=%d standing=%s", score, standing),
	})
	return nil
}

// Questionnaire returns all nine answers.
func (s *Service) Questionnaire(ctx context.Context, tenantID, email string) (Answers, error) {
	rec, err := s.store.Get(ctx, tenantID, email)
	if err != nil {
		return Answers{}, translate(err, "read progress record")
	}
	return rec.Answers, nil
}

// SubmitQuestionnaire upserts all nine answer fields as one write. Blank
// strings become nil so a half-filled form does not count as progress.
func (s *Service) SubmitQuestionnaire(ctx context.Context, tenantID, email string, answers Answers) error {
	answers.Normalize()
	if err := s.store.SetAnswers(ctx, tenantID, email, answers); err != nil {
		return translate(err, "set questionnaire answers")
	}
	if answers.Complete() {
		s.metrics.RecordQuestionnaireCompletion()
	}
	return nil
}

// Snapshot returns the raw record; the attestation trigger re-checks gates
// against it server-side.
func (s *Service) Snapshot(ctx context.Context, tenantID, email string) (Record, error) {
	rec, err := s.store.Get(ctx, tenantID, email)
	if err != nil {
		return Record{}, translate(err, "read progress record")
	}
	return rec, nil
}

// Overview evaluates the current snapshot and derives permissions for the
// dashboard.
func (s *Service) Overview(ctx context.Context, tenantID, email string) (Overview, error) {
	rec, err := s.store.Get(ctx, tenantID, email)
	if err != nil {
		return Overview{}, translate(err, "read progress record")
	}
	status := Evaluate(rec, s.passThreshold(tenantID))
	return Overview{Stages: status, Permissions: Allow(status)}, nil
}

// translate maps store sentinels onto coded domain errors.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(dErrors.CodeNotFound, "no such learner", err)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(dErrors.CodeUnavailable, "progress store unavailable", err)
	default:
		return dErrors.Wrap(dErrors.CodeInternal, op+" failed", err)
	}
}
