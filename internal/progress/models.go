// Package progress owns the training-completion state machine: the per-learner
// progress record, the completion evaluator and the action gates derived from
// it. Handlers and stores around it are plumbing; the rules live here.
package progress

import "time"

// Answers holds the nine fixed questionnaire fields. A nil field means the
// question was never answered; the questionnaire stage is complete only when
// every field is non-nil. Values are free text ("Oui", "Non" or a date).
type Answers struct {
	Dispositif      *string `json:"dispositif"`
	Engagement      *string `json:"engagement"`
	Identification  *string `json:"identification"`
	Formation       *string `json:"formation"`
	Procedure       *string `json:"procedure"`
	DispositifAlert *string `json:"dispositifAlert"`
	CertifierISO    *string `json:"certifierISO"`
	MepSystem       *string `json:"mepSystem"`
	Intention       *string `json:"intention"`
}

// fields returns the answers in declaration order so completeness and
// normalization don't enumerate nine names twice.
func (a *Answers) fields() []**string {
	return []**string{
		&a.Dispositif,
		&a.Engagement,
		&a.Identification,
		&a.Formation,
		&a.Procedure,
		&a.DispositifAlert,
		&a.CertifierISO,
		&a.MepSystem,
		&a.Intention,
	}
}

// Complete reports whether all nine questions carry an answer.
func (a Answers) Complete() bool {
	for _, f := range a.fields() {
		if *f == nil {
			return false
		}
	}
	return true
}

// Normalize maps empty strings to nil so "submitted blank" and "never
// submitted" evaluate identically.
func (a *Answers) Normalize() {
	for _, f := range a.fields() {
		if *f != nil && **f == "" {
			*f = nil
		}
	}
}

// Record is the per-learner progress record, keyed by (tenant, email).
// Each slice of it is written by exactly one signal collector.
type Record struct {
	Tenant string `json:"tenant"`
	Email  string `json:"email"`

	// Video flags are monotonic: true never reverts to false.
	Video1 bool `json:"video1"`
	Video2 bool `json:"video2"`

	// QuizScore is nil until the first attempt; every submission overwrites
	// it, so it always holds the latest attempt only.
	QuizScore *int `json:"quiz_score"`

	Answers Answers `json:"answers"`

	// AttestationIssued and AttestationDate are set together exactly once.
	AttestationIssued bool       `json:"attestation_issued"`
	AttestationDate   *time.Time `json:"attestation_date"`
}

// QuizStanding is the tri-state a learner sees on the quiz page. "Never
// attempted" is deliberately distinct from "failed": the former is neutral,
// the latter tells the learner to retake.
type QuizStanding string

const (
	StandingUnattempted  QuizStanding = "unattempted"
	StandingInsufficient QuizStanding = "insufficient"
	StandingPassed       QuizStanding = "passed"
)

// StandingOf derives the quiz standing from the latest score.
func StandingOf(score *int, passThreshold int) QuizStanding {
	switch {
	case score == nil:
		return StandingUnattempted
	case *score < passThreshold:
		return StandingInsufficient
	default:
		return StandingPassed
	}
}

// Message returns the learner-facing text for a standing.
func (s QuizStanding) Message() string {
	switch s {
	case StandingUnattempted:
		return "No previous exam score found. First exam attempt."
	case StandingInsufficient:
		return "Score is not sufficient, the exam must be retaken."
	case StandingPassed:
		return "Exam passed."
	default:
		return ""
	}
}
