package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the training progress module.
type Metrics struct {
	// Score submissions by resulting standing (passed / insufficient)
	ScoreSubmissions *prometheus.CounterVec

	// Questionnaire upserts that completed all nine answers
	QuestionnaireCompletions prometheus.Counter

	// Attestations issued (first issuance only, not idempotent replays)
	AttestationsIssued prometheus.Counter

	// Issuance attempts refused because gates were unmet
	IssuanceRefusals prometheus.Counter
}

// New creates a Metrics instance with all progress module metrics registered.
func New() *Metrics {
	return &Metrics{
		ScoreSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certform_score_submissions_total",
			Help: "Quiz score submissions by resulting standing",
		}, []string{"standing"}),

		QuestionnaireCompletions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certform_questionnaire_completions_total",
			Help: "Questionnaire submissions with all nine answers present",
		}),

		AttestationsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certform_attestations_issued_total",
			Help: "Certificates issued (first issuance per learner)",
		}),

		IssuanceRefusals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certform_issuance_refusals_total",
			Help: "Issuance attempts refused because prerequisites were unmet",
		}),
	}
}

// RecordScoreSubmission counts one score write by standing.
func (m *Metrics) RecordScoreSubmission(standing string) {
	if m != nil {
		m.ScoreSubmissions.WithLabelValues(standing).Inc()
	}
}

// RecordQuestionnaireCompletion counts one complete questionnaire upsert.
func (m *Metrics) RecordQuestionnaireCompletion() {
	if m != nil {
		m.QuestionnaireCompletions.Inc()
	}
}

// RecordAttestationIssued counts one first-time issuance.
func (m *Metrics) RecordAttestationIssued() {
	if m != nil {
		m.AttestationsIssued.Inc()
	}
}

// RecordIssuanceRefusal counts one gated-off issuance attempt.
func (m *Metrics) RecordIssuanceRefusal() {
	if m != nil {
		m.IssuanceRefusals.Inc()
	}
}
