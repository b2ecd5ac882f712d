package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type profileRepository struct {
	ext sqlx.ExtContext
}

const profileColumns = `
	id, user_id, name, gender, religion, height_cm, marital_status, about,
	education, work_history, profile_image_url, phone,
	father_occupation, mother_occupation, siblings, family_type,
	profile_image_privacy, additional_images_privacy, created_at, updated_at
`

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.ext, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	if err := r.loadAdditionalImages(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdatePrivacy(ctx context.Context, id int, imagePrivacy, additionalImagesPrivacy domain.PrivacyLevel) error {
	query := `
		UPDATE profiles
		SET profile_image_privacy = $2, additional_images_privacy = $3, updated_at = NOW()
		WHERE id = $1`
	result, err := r.ext.ExecContext(ctx, query, id, imagePrivacy, additionalImagesPrivacy)
	if err != nil {
		return fmt.Errorf("failed to update privacy settings: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) loadAdditionalImages(ctx context.Context, profile *domain.Profile) error {
	images := []string{}
	query := `SELECT image_url FROM additional_images WHERE profile_id = $1 ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.ext, &images, query, profile.ID); err != nil {
		return fmt.Errorf("failed to load additional images: %w", err)
	}
	profile.AdditionalImages = images
	return nil
}
