// Package unlock coordinates the "spend credits, grant permanent visibility"
// operation. The debit and the unlock-record creation happen in one storage
// transaction: either both commit or neither does.
package unlock

import (
	"context"
	"errors"
	"fmt"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/credit"
)

// Policy configures unlock behaviour. RequireAcceptedInterest gates unlocking
// on an accepted interest between the pair; the ledger itself knows nothing
// about interests, so flipping this never touches wallet code.
type Policy struct {
	UnitCost                int
	RequireAcceptedInterest bool
}

type UnlockUseCase struct {
	store  repository.Store
	ledger *credit.LedgerUseCase
	policy Policy
}

func NewUnlockUseCase(store repository.Store, ledger *credit.LedgerUseCase, policy Policy) *UnlockUseCase {
	return &UnlockUseCase{store: store, ledger: ledger, policy: policy}
}

// Result is the outcome of an unlock call. Charged is false when the profile
// was already unlocked and the call resolved idempotently.
type Result struct {
	Record           *domain.UnlockRecord
	RemainingCredits int
	Charged          bool
}

// Unlock grants the viewer permanent visibility of the target's gated fields.
//
// A repeat unlock is an idempotent success: the existing record is returned
// and nothing is charged. A fresh unlock debits the configured cost and
// creates the record atomically; a concurrent duplicate loses the insert,
// its debit is rolled back, and it resolves to the winner's record.
func (uc *UnlockUseCase) Unlock(ctx context.Context, viewerID, targetProfileID int) (*Result, error) {
	if viewerID == targetProfileID {
		return nil, domain.ErrSelfUnlock
	}

	if _, err := uc.store.Profiles().GetByID(ctx, targetProfileID); err != nil {
		return nil, err
	}

	if existing, err := uc.store.Unlocks().Get(ctx, viewerID, targetProfileID); err == nil {
		return uc.resolved(ctx, viewerID, existing)
	} else if !errors.Is(err, domain.ErrUnlockNotFound) {
		return nil, err
	}

	if uc.policy.RequireAcceptedInterest {
		interest, err := uc.store.Interests().GetActiveByPair(ctx, viewerID, targetProfileID)
		if err != nil || interest.Status != domain.InterestAccepted {
			return nil, domain.ErrInterestNotAccepted
		}
	}

	referenceID := fmt.Sprintf("unlock:%d:%d", viewerID, targetProfileID)

	var result *Result
	err := uc.store.InTx(ctx, func(s repository.Store) error {
		wallet, debit, err := uc.ledger.WithStore(s).Debit(ctx, viewerID, uc.policy.UnitCost, domain.ReasonUnlockSpend, referenceID)
		if err != nil {
			return err
		}

		record := &domain.UnlockRecord{
			ViewerID:        viewerID,
			TargetProfileID: targetProfileID,
			UnitCost:        uc.policy.UnitCost,
			TransactionID:   debit.ID,
		}
		if err := s.Unlocks().Create(ctx, record); err != nil {
			return err
		}

		result = &Result{Record: record, RemainingCredits: wallet.Balance, Charged: true}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyUnlocked) {
			// Lost the race; the debit was rolled back with the transaction.
			if existing, getErr := uc.store.Unlocks().Get(ctx, viewerID, targetProfileID); getErr == nil {
				return uc.resolved(ctx, viewerID, existing)
			}
		}
		return nil, err
	}
	return result, nil
}

func (uc *UnlockUseCase) resolved(ctx context.Context, viewerID int, record *domain.UnlockRecord) (*Result, error) {
	wallet, err := uc.ledger.Balance(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return &Result{Record: record, RemainingCredits: wallet.Balance, Charged: false}, nil
}

// IsUnlocked reports whether the viewer already holds an unlock for the target.
func (uc *UnlockUseCase) IsUnlocked(ctx context.Context, viewerID, targetProfileID int) (bool, error) {
	return uc.store.Unlocks().Exists(ctx, viewerID, targetProfileID)
}
