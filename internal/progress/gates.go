package progress

// Permissions are the learner-facing actions allowed in the current state.
// The UI presents stages in order but the model imposes no ordering between
// videos, quiz and questionnaire; only the certificate requires all three.
type Permissions struct {
	// RetakeQuiz is always allowed; each retake overwrites the stored score.
	RetakeQuiz bool `json:"retake_quiz"`

	// CertificateUnlocked is true once videos, quiz and questionnaire are all
	// complete. Attestation itself is the consequence of unlocking, never a
	// precondition of it.
	CertificateUnlocked bool `json:"certificate_unlocked"`
}

// Allow derives permissions from an evaluated stage status.
func Allow(status StageStatus) Permissions {
	return Permissions{
		RetakeQuiz:          true,
		CertificateUnlocked: status.VideosDone && status.QuizDone && status.QuestionnaireDone,
	}
}

// MissingStages lists the incomplete certificate prerequisites, used to tell
// a learner what remains when issuance is refused.
func MissingStages(status StageStatus) []string {
	var missing []string
	if !status.VideosDone {
		missing = append(missing, "videos")
	}
	if !status.QuizDone {
		missing = append(missing, "quiz")
	}
	if !status.QuestionnaireDone {
		missing = append(missing, "questionnaire")
	}
	return missing
}
