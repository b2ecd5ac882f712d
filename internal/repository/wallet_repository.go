package repository

import (
	"context"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type WalletRepository interface {
	Get(ctx context.Context, userID int) (*domain.CreditWallet, error)

	// Apply atomically adjusts the wallet balance by tx.Delta and appends tx to
	// the ledger, as one unit. A positive delta creates the wallet on first
	// grant. A negative delta returns domain.ErrInsufficientCredits when the
	// balance would go below zero, leaving both wallet and ledger untouched.
	// This is the only path that mutates a balance.
	Apply(ctx context.Context, tx *domain.CreditTransaction) (*domain.CreditWallet, error)

	ListTransactions(ctx context.Context, userID, limit, offset int) ([]*domain.CreditTransaction, error)
}
