package prompt

import (
	"strings"

	"github.com/healthassistant/hub/internal/models"
)

// answerInstruction pins the generator to the supplied context. The refusal
// sentence is part of the contract: when the context is insufficient the
// model must say so instead of guessing.
const answerInstruction = "You are a medical assistant that ONLY provides information based on the given context. " +
	"NEVER answer from your general knowledge. " +
	"If the context below does not contain enough information to answer the question, respond with: " +
	"\"I apologize, but I don't have enough information in my medical database to answer this specific question. " +
	"Please consult with your healthcare provider for accurate guidance.\""

// questionInstruction asks for four personalized questions phrased from the
// patient's point of view.
const questionInstruction = "Generate 4 specific questions that would be relevant and helpful for this patient. " +
	"Focus on their health condition, medications, and potential health management strategies. " +
	"Phrase each question as if the patient is asking it, one question per line."

// BuildAnswerPrompt renders the full answer prompt: instruction, optional
// patient block, passages block, the question, and the answer cue. The
// patient block is omitted entirely when the profile renders to nothing.
func BuildAnswerPrompt(ctx AssembledContext, question string) string {
	var b strings.Builder

	b.WriteString(answerInstruction)
	b.WriteString("\n\n")

	if profileBlock := ctx.ProfileBlock(); profileBlock != "" {
		b.WriteString("Patient Information:\n")
		b.WriteString(profileBlock)
		b.WriteString("\n\n")
	}

	b.WriteString("Medical Information:\n")
	b.WriteString(ctx.PassagesBlock())
	b.WriteString("\n\n")

	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n\n")

	b.WriteString("Answer:")

	return b.String()
}

// BuildProfileQuestionPrompt renders the profile-only prompt used for
// smart-question generation. Callers are expected to pass a profile with at
// least one renderable field; a nil profile renders an empty patient block.
func BuildProfileQuestionPrompt(profile *models.HealthProfile) string {
	var b strings.Builder

	b.WriteString("Based on the patient's health profile, generate 4 relevant and personalized questions.\n\n")

	if block := RenderProfileFields(profile); block != "" {
		b.WriteString(block)
		b.WriteString("\n\n")
	}

	b.WriteString(questionInstruction)

	return b.String()
}
