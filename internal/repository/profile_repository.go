package repository

import (
	"context"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	UpdatePrivacy(ctx context.Context, id int, imagePrivacy, additionalImagesPrivacy domain.PrivacyLevel) error
}
