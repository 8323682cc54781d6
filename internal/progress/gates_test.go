package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	t.Run("retake is always permitted", func(t *testing.T) {
		assert.True(t, Allow(StageStatus{}).RetakeQuiz)
		assert.True(t, Allow(StageStatus{QuizDone: true}).RetakeQuiz)
		assert.True(t, Allow(StageStatus{VideosDone: true, QuizDone: true, QuestionnaireDone: true, AttestationDone: true}).RetakeQuiz)
	})

	t.Run("certificate stays locked until all three prerequisites hold", func(t *testing.T) {
		partials := []StageStatus{
			{},
			{VideosDone: true},
			{QuizDone: true},
			{QuestionnaireDone: true},
			{VideosDone: true, QuizDone: true},
			{VideosDone: true, QuestionnaireDone: true},
			{QuizDone: true, QuestionnaireDone: true},
		}
		for _, status := range partials {
			assert.False(t, Allow(status).CertificateUnlocked, "status %+v should not unlock", status)
		}
	})

	t.Run("certificate unlocks on three prerequisites regardless of attestation", func(t *testing.T) {
		unlocked := StageStatus{VideosDone: true, QuizDone: true, QuestionnaireDone: true}
		assert.True(t, Allow(unlocked).CertificateUnlocked)

		unlocked.AttestationDone = true
		assert.True(t, Allow(unlocked).CertificateUnlocked)
	})
}

func TestMissingStages(t *testing.T) {
	assert.Equal(t, []string{"videos", "quiz", "questionnaire"}, MissingStages(StageStatus{}))
	assert.Equal(t, []string{"quiz"}, MissingStages(StageStatus{VideosDone: true, QuestionnaireDone: true}))
	assert.Empty(t, MissingStages(StageStatus{VideosDone: true, QuizDone: true, QuestionnaireDone: true}))
}
