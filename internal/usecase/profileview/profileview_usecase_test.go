package profileview_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository/memory"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/credit"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/profileview"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/unlock"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/visibility"
)

func strPtr(s string) *string { return &s }

func seedStore(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.NewStore()
	store.SeedProfile(&domain.Profile{ID: 1, UserID: 1, Name: "Alice", Gender: "female",
		ProfileImagePrivacy: domain.PrivacyPublic, AdditionalImagesPrivacy: domain.PrivacyPublic})
	store.SeedProfile(&domain.Profile{
		ID: 2, UserID: 2, Name: "Bithi", Gender: "female",
		ProfileImageURL:         strPtr("https://cdn.example.com/profiles/2.jpg"),
		AdditionalImages:        []string{"g1.jpg"},
		Phone:                   strPtr("+8801700000000"),
		ProfileImagePrivacy:     domain.PrivacyMatches,
		AdditionalImagesPrivacy: domain.PrivacyMatches,
	})
	return store
}

func TestGetProfileView(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous viewer", func(t *testing.T) {
		store := seedStore(t)
		uc := profileview.NewProfileViewUseCase(store, nil, nil)

		view, err := uc.GetProfileView(ctx, 0, 2, false)
		require.NoError(t, err)
		assert.Equal(t, visibility.PlaceholderImageURL, view.ProfileImageURL)
		assert.True(t, view.ContactLocked)
		assert.Empty(t, view.InterestStatus)
	})

	t.Run("missing target", func(t *testing.T) {
		store := seedStore(t)
		uc := profileview.NewProfileViewUseCase(store, nil, nil)

		_, err := uc.GetProfileView(ctx, 0, 999, false)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("accepted interest reveals matches image", func(t *testing.T) {
		store := seedStore(t)
		uc := profileview.NewProfileViewUseCase(store, nil, nil)

		interest := &domain.Interest{SenderID: 1, ReceiverID: 2}
		require.NoError(t, store.Interests().Create(ctx, interest))
		_, err := store.Interests().UpdateStatus(ctx, interest.ID, domain.InterestSent, domain.InterestAccepted)
		require.NoError(t, err)

		view, err := uc.GetProfileView(ctx, 1, 2, false)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/profiles/2.jpg", view.ProfileImageURL)
		assert.Equal(t, string(domain.InterestAccepted), view.InterestStatus)
		assert.True(t, view.ContactLocked)
	})

	t.Run("unlock reveals gated fields", func(t *testing.T) {
		store := seedStore(t)
		uc := profileview.NewProfileViewUseCase(store, nil, nil)
		ledger := credit.NewLedgerUseCase(store)
		unlocker := unlock.NewUnlockUseCase(store, ledger, unlock.Policy{UnitCost: 10})

		_, err := ledger.Credit(ctx, 1, 10, domain.ReasonPurchase, "pay-001")
		require.NoError(t, err)
		_, err = unlocker.Unlock(ctx, 1, 2)
		require.NoError(t, err)

		view, err := uc.GetProfileView(ctx, 1, 2, false)
		require.NoError(t, err)
		assert.True(t, view.IsUnlocked)
		assert.False(t, view.ContactLocked)
		assert.Equal(t, "+8801700000000", *view.Phone)
	})

	t.Run("owner and preview", func(t *testing.T) {
		store := seedStore(t)
		uc := profileview.NewProfileViewUseCase(store, nil, nil)

		own, err := uc.GetProfileView(ctx, 2, 2, false)
		require.NoError(t, err)
		assert.False(t, own.ContactLocked)
		assert.Equal(t, "https://cdn.example.com/profiles/2.jpg", own.ProfileImageURL)

		preview, err := uc.GetProfileView(ctx, 2, 2, true)
		require.NoError(t, err)
		assert.True(t, preview.ContactLocked)
		assert.Equal(t, visibility.PlaceholderImageURL, preview.ProfileImageURL)
	})
}

func TestUpdatePrivacy(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	uc := profileview.NewProfileViewUseCase(store, nil, nil)

	t.Run("takes effect on next view", func(t *testing.T) {
		view, err := uc.GetProfileView(ctx, 0, 2, false)
		require.NoError(t, err)
		require.Equal(t, visibility.PlaceholderImageURL, view.ProfileImageURL) // matches privacy, anonymous viewer

		err = uc.UpdatePrivacy(ctx, 2, domain.PrivacyPublic, domain.PrivacyPublic)
		require.NoError(t, err)

		view, err = uc.GetProfileView(ctx, 0, 2, false)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/profiles/2.jpg", view.ProfileImageURL)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		err := uc.UpdatePrivacy(ctx, 1, "friends", domain.PrivacyPublic)
		assert.Error(t, err)
	})

	t.Run("missing profile", func(t *testing.T) {
		err := uc.UpdatePrivacy(ctx, 999, domain.PrivacyPublic, domain.PrivacyPublic)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}
