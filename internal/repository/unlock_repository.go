package repository

import (
	"context"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type UnlockRepository interface {
	// Get returns the unlock record for (viewer, target) or
	// domain.ErrUnlockNotFound.
	Get(ctx context.Context, viewerID, targetProfileID int) (*domain.UnlockRecord, error)

	Exists(ctx context.Context, viewerID, targetProfileID int) (bool, error)

	// Create inserts the record. Returns domain.ErrAlreadyUnlocked when a record
	// for the pair already exists, so a concurrent duplicate can be detected
	// under the same transaction as the debit.
	Create(ctx context.Context, record *domain.UnlockRecord) error
}
