package audit

import "time"

// Action names the auditable operations of the training pipeline.
const (
	ActionScoreSubmitted    = "score_submitted"
	ActionAttestationIssued = "attestation_issued"
)

// Event is emitted from domain logic to capture key actions. The progress
// record keeps only the latest quiz score; the history of attempts lives
// here. Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Timestamp time.Time
	Tenant    string
	Learner   string
	Action    string
	Detail    string
}
