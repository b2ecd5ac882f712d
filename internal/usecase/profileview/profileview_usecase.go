// Package profileview assembles profile responses. GetProfileView is the only
// code path that builds a profile payload, so gated fields cannot leak through
// a side door.
package profileview

import (
	"context"
	"fmt"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository"
	redisrepo "github.com/biyeghor/biyeghor-backend/internal/repository/redis"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/visibility"
)

// CompatibilityScorer supplies the match score shown on profile views. The
// scoring engine is an external collaborator; NoScorer is used when none is
// wired.
type CompatibilityScorer interface {
	Score(ctx context.Context, viewerProfileID, targetProfileID int) *int
}

// NoScorer reports no score for any pair.
type NoScorer struct{}

func (NoScorer) Score(context.Context, int, int) *int { return nil }

type ProfileViewUseCase struct {
	store  repository.Store
	cache  *redisrepo.UnlockCache
	scorer CompatibilityScorer
}

// NewProfileViewUseCase creates the use case. cache may be nil; every lookup
// then goes to storage.
func NewProfileViewUseCase(store repository.Store, cache *redisrepo.UnlockCache, scorer CompatibilityScorer) *ProfileViewUseCase {
	if scorer == nil {
		scorer = NoScorer{}
	}
	return &ProfileViewUseCase{store: store, cache: cache, scorer: scorer}
}

// GetProfileView loads the target profile, the active interest between viewer
// and target, and the unlock state, and resolves the visible fields.
// viewerProfileID is zero for unauthenticated requests.
func (uc *ProfileViewUseCase) GetProfileView(ctx context.Context, viewerProfileID, targetProfileID int, preview bool) (*visibility.View, error) {
	target, err := uc.store.Profiles().GetByID(ctx, targetProfileID)
	if err != nil {
		return nil, err
	}

	in := visibility.Input{
		Target:      target,
		PreviewMode: preview,
	}

	if viewerProfileID != 0 {
		viewer, err := uc.store.Profiles().GetByID(ctx, viewerProfileID)
		if err != nil {
			return nil, err
		}
		in.Viewer = viewer

		if viewerProfileID != targetProfileID {
			interest, err := uc.store.Interests().GetActiveByPair(ctx, viewerProfileID, targetProfileID)
			if err == nil {
				in.InterestStatus = interest.Status
			} else if err != domain.ErrInterestNotFound {
				return nil, err
			}

			unlocked, err := uc.isUnlocked(ctx, viewerProfileID, targetProfileID)
			if err != nil {
				return nil, err
			}
			in.IsUnlocked = unlocked

			in.CompatibilityScore = uc.scorer.Score(ctx, viewerProfileID, targetProfileID)
		}
	}

	return visibility.Resolve(in), nil
}

// UpdatePrivacy changes who may see the owner's image fields. Takes effect on
// the next view; unlocks already granted are unaffected.
func (uc *ProfileViewUseCase) UpdatePrivacy(ctx context.Context, profileID int, imagePrivacy, additionalImagesPrivacy domain.PrivacyLevel) error {
	if !imagePrivacy.Valid() || !additionalImagesPrivacy.Valid() {
		return fmt.Errorf("invalid privacy level")
	}
	return uc.store.Profiles().UpdatePrivacy(ctx, profileID, imagePrivacy, additionalImagesPrivacy)
}

// isUnlocked consults the cache first; only unlocked pairs are cached since
// unlocks are permanent.
func (uc *ProfileViewUseCase) isUnlocked(ctx context.Context, viewerProfileID, targetProfileID int) (bool, error) {
	if uc.cache != nil {
		if unlocked, known := uc.cache.Get(ctx, viewerProfileID, targetProfileID); known {
			return unlocked, nil
		}
	}

	unlocked, err := uc.store.Unlocks().Exists(ctx, viewerProfileID, targetProfileID)
	if err != nil {
		return false, err
	}
	if unlocked && uc.cache != nil {
		uc.cache.Set(ctx, viewerProfileID, targetProfileID)
	}
	return unlocked, nil
}
