// Package credit is the sole authority over wallet balances. Every balance
// change goes through Credit or Debit, each of which appends a ledger entry
// atomically with the balance update.
package credit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository"
)

type LedgerUseCase struct {
	store repository.Store
}

func NewLedgerUseCase(store repository.Store) *LedgerUseCase {
	return &LedgerUseCase{store: store}
}

// WithStore rebinds the ledger to another store, typically the transactional
// store passed to an InTx callback, so callers can compose a debit with their
// own writes atomically.
func (uc *LedgerUseCase) WithStore(s repository.Store) *LedgerUseCase {
	return &LedgerUseCase{store: s}
}

// Credit grants amount credits to the user. Used for purchases and refunds;
// creates the wallet on first grant. Amount must be positive.
func (uc *LedgerUseCase) Credit(ctx context.Context, userID, amount int, reason domain.TransactionReason, referenceID string) (*domain.CreditWallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	tx := &domain.CreditTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Delta:       amount,
		Reason:      reason,
		ReferenceID: referenceID,
	}
	wallet, err := uc.store.Wallets().Apply(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}
	return wallet, nil
}

// Debit spends amount credits. Returns domain.ErrInsufficientCredits when the
// balance is too low, leaving the wallet and ledger untouched.
func (uc *LedgerUseCase) Debit(ctx context.Context, userID, amount int, reason domain.TransactionReason, referenceID string) (*domain.CreditWallet, *domain.CreditTransaction, error) {
	if amount <= 0 {
		return nil, nil, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	tx := &domain.CreditTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Delta:       -amount,
		Reason:      reason,
		ReferenceID: referenceID,
	}
	wallet, err := uc.store.Wallets().Apply(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	return wallet, tx, nil
}

// Balance returns the wallet. A user without a wallet has a zero balance.
func (uc *LedgerUseCase) Balance(ctx context.Context, userID int) (*domain.CreditWallet, error) {
	wallet, err := uc.store.Wallets().Get(ctx, userID)
	if err == domain.ErrWalletNotFound {
		return &domain.CreditWallet{UserID: userID}, nil
	}
	return wallet, err
}

func (uc *LedgerUseCase) History(ctx context.Context, userID, limit, offset int) ([]*domain.CreditTransaction, error) {
	return uc.store.Wallets().ListTransactions(ctx, userID, limit, offset)
}
