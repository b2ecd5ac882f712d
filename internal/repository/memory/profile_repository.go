package memory

import (
	"context"
	"time"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type profileRepository struct {
	r runner
}

func (r *profileRepository) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	var out *domain.Profile
	err := r.r.with(func(st *state) error {
		profile, ok := st.profiles[id]
		if !ok {
			return domain.ErrProfileNotFound
		}
		cp := *profile
		out = &cp
		return nil
	})
	return out, err
}

func (r *profileRepository) UpdatePrivacy(_ context.Context, id int, imagePrivacy, additionalImagesPrivacy domain.PrivacyLevel) error {
	return r.r.with(func(st *state) error {
		profile, ok := st.profiles[id]
		if !ok {
			return domain.ErrProfileNotFound
		}
		profile.ProfileImagePrivacy = imagePrivacy
		profile.AdditionalImagesPrivacy = additionalImagesPrivacy
		profile.UpdatedAt = time.Now()
		return nil
	})
}

