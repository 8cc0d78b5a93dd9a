// Package prompt assembles retrieved passages and health-profile context and
// renders the prompts sent to the text generator. Everything here is pure and
// deterministic: same inputs, same strings.
package prompt

import (
	"strconv"
	"strings"

	"github.com/healthassistant/hub/internal/models"
)

// AssembledContext merges the retrieved passages with the caller's health
// profile. Passage order is preserved exactly as retrieved
// (relevance-descending); Profile may be nil.
type AssembledContext struct {
	Passages []models.RetrievedPassage
	Profile  *models.HealthProfile
}

// Assemble builds an AssembledContext from retrieved passages and an optional
// profile. Passages may be empty; callers short-circuit before generation in
// that case, so an empty context is never rendered into an answer prompt.
func Assemble(passages []models.RetrievedPassage, profile *models.HealthProfile) AssembledContext {
	return AssembledContext{Passages: passages, Profile: profile}
}

// PassagesBlock concatenates passage texts in rank order, separated by a
// blank line.
func (c AssembledContext) PassagesBlock() string {
	texts := make([]string, 0, len(c.Passages))
	for _, p := range c.Passages {
		texts = append(texts, p.Text)
	}

	return strings.Join(texts, "\n\n")
}

// ProfileBlock renders the profile as labeled lines, one field per line, in a
// fixed order. Absent (nil) and empty fields are skipped entirely. When the
// profile is nil or nothing renders, the result is the empty string, not an
// empty-labeled section.
func (c AssembledContext) ProfileBlock() string {
	return RenderProfileFields(c.Profile)
}

// RenderProfileFields renders the non-empty fields of a profile as
// "label: value" lines in the fixed order: age, gender, health condition,
// ethnicity, allergies, height, weight, surgical history, current medication,
// prescribed medicine, blood group.
func RenderProfileFields(profile *models.HealthProfile) string {
	if profile == nil {
		return ""
	}

	var b strings.Builder

	writeIntField(&b, "Age", profile.Age)
	writeStringField(&b, "Gender", profile.Gender)
	writeStringField(&b, "Health Condition", profile.Condition)
	writeStringField(&b, "Ethnicity", profile.Ethnicity)
	writeStringField(&b, "Allergies", profile.Allergies)
	writeFloatField(&b, "Height", profile.Height)
	writeFloatField(&b, "Weight", profile.Weight)
	writeStringField(&b, "Surgical History", profile.SurgicalHistory)
	writeStringField(&b, "Current Medication", profile.CurrentMedication)
	writeStringField(&b, "Prescribed Medicine", profile.PrescribedMedicine)
	writeStringField(&b, "Blood Group", profile.BloodGroup)

	return strings.TrimSuffix(b.String(), "\n")
}

func writeStringField(b *strings.Builder, label string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}

	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strings.TrimSpace(*value))
	b.WriteString("\n")
}

func writeIntField(b *strings.Builder, label string, value *int) {
	if value == nil {
		return
	}

	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strconv.Itoa(*value))
	b.WriteString("\n")
}

func writeFloatField(b *strings.Builder, label string, value *float64) {
	if value == nil {
		return
	}

	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strconv.FormatFloat(*value, 'f', -1, 64))
	b.WriteString("\n")
}
