package progress

// StageStatus is the evaluator's verdict on one progress record snapshot:
// which of the four stages are complete and the overall percentage shown on
// the dashboard.
type StageStatus struct {
	VideosDone        bool `json:"videos_done"`
	QuizDone          bool `json:"quiz_done"`
	QuestionnaireDone bool `json:"questionnaire_done"`
	AttestationDone   bool `json:"attestation_done"`
	OverallPercent    int  `json:"overall_percent"`
}

// Evaluate computes stage completion from a record snapshot. It is pure and
// total: any well-formed snapshot yields a status, an all-empty record yields
// 0% and a fully complete one 100%. Safe to call concurrently from any number
// of viewers of the same learner.
func Evaluate(rec Record, passThreshold int) StageStatus {
	status := StageStatus{
		VideosDone:        rec.Video1 && rec.Video2,
		QuizDone:          rec.QuizScore != nil && *rec.QuizScore >= passThreshold,
		QuestionnaireDone: rec.Answers.Complete(),
		AttestationDone:   rec.AttestationIssued,
	}

	done := 0
	for _, stage := range []bool{status.VideosDone, status.QuizDone, status.QuestionnaireDone, status.AttestationDone} {
		if stage {
			done++
		}
	}
	// Four stages, so the percentage is always a multiple of 25.
	status.OverallPercent = done * 100 / 4

	return status
}
