package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthassistant/hub/internal/models"
)

// ProfilesRepository handles data access for the health_profiles table.
// Profiles are owned by users and removed by the ON DELETE CASCADE constraint
// when the owning user is deleted.
type ProfilesRepository struct {
	db *pgxpool.Pool
}

// NewProfilesRepository creates a new profiles repository.
func NewProfilesRepository(db *pgxpool.Pool) *ProfilesRepository {
	return &ProfilesRepository{db: db}
}

// GetByUserID returns the health profile for the given user, or (nil, nil)
// when the user has none. Having no profile is not an error: the chat
// pipeline and smart-question generator both treat a missing profile as
// "unknown" and render nothing for it.
func (r *ProfilesRepository) GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	var p models.HealthProfile

	err := r.db.QueryRow(ctx, `
		SELECT user_id, age, gender, condition, ethnicity, allergies, height, weight,
		       surgical_history, current_medication, prescribed_medicine, blood_group,
		       created_at, updated_at
		FROM health_profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&p.UserID, &p.Age, &p.Gender, &p.Condition, &p.Ethnicity, &p.Allergies,
		&p.Height, &p.Weight, &p.SurgicalHistory, &p.CurrentMedication,
		&p.PrescribedMedicine, &p.BloodGroup, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("get profile by user id: %w", err)
	}

	return &p, nil
}

// Upsert inserts or replaces the profile for the given user.
func (r *ProfilesRepository) Upsert(ctx context.Context, p *models.HealthProfile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO health_profiles (
			user_id, age, gender, condition, ethnicity, allergies, height, weight,
			surgical_history, current_medication, prescribed_medicine, blood_group
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			condition = EXCLUDED.condition,
			ethnicity = EXCLUDED.ethnicity,
			allergies = EXCLUDED.allergies,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			surgical_history = EXCLUDED.surgical_history,
			current_medication = EXCLUDED.current_medication,
			prescribed_medicine = EXCLUDED.prescribed_medicine,
			blood_group = EXCLUDED.blood_group,
			updated_at = now()`,
		p.UserID, p.Age, p.Gender, p.Condition, p.Ethnicity, p.Allergies,
		p.Height, p.Weight, p.SurgicalHistory, p.CurrentMedication,
		p.PrescribedMedicine, p.BloodGroup,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
