package models

import "time"

// HealthProfile holds the structured health data for one user. Every clinical
// field is optional: a nil pointer means "unknown", which is meaningful and
// distinct from an empty string. At most one profile exists per user; rows are
// removed when the owning user is deleted (ON DELETE CASCADE).
type HealthProfile struct {
	UserID             int64      `json:"user_id"`
	Age                *int       `json:"age,omitempty"`
	Gender             *string    `json:"gender,omitempty"`
	Condition          *string    `json:"condition,omitempty"`
	Ethnicity          *string    `json:"ethnicity,omitempty"`
	Allergies          *string    `json:"allergies,omitempty"`
	Height             *float64   `json:"height,omitempty"`
	Weight             *float64   `json:"weight,omitempty"`
	SurgicalHistory    *string    `json:"surgical_history,omitempty"`
	CurrentMedication  *string    `json:"current_medication,omitempty"`
	PrescribedMedicine *string    `json:"prescribed_medicine,omitempty"`
	BloodGroup         *string    `json:"blood_group,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}
