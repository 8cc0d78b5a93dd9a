package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassistant/hub/internal/models"
)

func TestBuildAnswerPrompt(t *testing.T) {
	passages := []models.RetrievedPassage{
		{Text: "Hypertension is persistently elevated blood pressure.", SourceID: "med-1", Rank: 0},
		{Text: "First-line treatment often includes ACE inhibitors.", SourceID: "med-2", Rank: 1},
	}

	t.Run("includes instruction, passages, question, and answer cue", func(t *testing.T) {
		got := BuildAnswerPrompt(Assemble(passages, nil), "What is hypertension?")

		assert.Contains(t, got, "ONLY provides information based on the given context")
		assert.Contains(t, got, "Medical Information:\nHypertension is persistently elevated blood pressure.")
		assert.Contains(t, got, "Question: What is hypertension?")
		assert.True(t, strings.HasSuffix(got, "Answer:"))
	})

	t.Run("omits the patient block when profile is nil", func(t *testing.T) {
		got := BuildAnswerPrompt(Assemble(passages, nil), "q")
		assert.NotContains(t, got, "Patient Information:")
	})

	t.Run("omits the patient block when profile has no renderable fields", func(t *testing.T) {
		got := BuildAnswerPrompt(Assemble(passages, &models.HealthProfile{}), "q")
		assert.NotContains(t, got, "Patient Information:")
	})

	t.Run("includes the patient block before the passages block", func(t *testing.T) {
		profile := &models.HealthProfile{Age: intPtr(35), Condition: strPtr("Hypertension")}
		got := BuildAnswerPrompt(Assemble(passages, profile), "q")

		patientIdx := strings.Index(got, "Patient Information:")
		medicalIdx := strings.Index(got, "Medical Information:")
		require.NotEqual(t, -1, patientIdx)
		require.NotEqual(t, -1, medicalIdx)
		assert.Less(t, patientIdx, medicalIdx)
		assert.Contains(t, got, "Age: 35")
		assert.Contains(t, got, "Health Condition: Hypertension")
	})

	t.Run("is deterministic", func(t *testing.T) {
		profile := &models.HealthProfile{Condition: strPtr("Asthma")}
		first := BuildAnswerPrompt(Assemble(passages, profile), "q")
		second := BuildAnswerPrompt(Assemble(passages, profile), "q")
		assert.Equal(t, first, second)
	})
}

func TestBuildProfileQuestionPrompt(t *testing.T) {
	t.Run("renders profile fields and the four-question instruction", func(t *testing.T) {
		profile := &models.HealthProfile{
			Age:               intPtr(35),
			Condition:         strPtr("Hypertension"),
			CurrentMedication: strPtr("Lisinopril"),
		}

		got := BuildProfileQuestionPrompt(profile)
		assert.Contains(t, got, "generate 4 relevant and personalized questions")
		assert.Contains(t, got, "Age: 35")
		assert.Contains(t, got, "Health Condition: Hypertension")
		assert.Contains(t, got, "Current Medication: Lisinopril")
		assert.Contains(t, got, "as if the patient is asking it")
	})

	t.Run("omits nil fields", func(t *testing.T) {
		got := BuildProfileQuestionPrompt(&models.HealthProfile{Condition: strPtr("Asthma")})
		assert.NotContains(t, got, "Age:")
		assert.NotContains(t, got, "Blood Group:")
	})
}
