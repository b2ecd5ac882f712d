package memory

import (
	"context"
	"sort"
	"time"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type walletRepository struct {
	r runner
}

func (r *walletRepository) Get(_ context.Context, userID int) (*domain.CreditWallet, error) {
	var out *domain.CreditWallet
	err := r.r.with(func(st *state) error {
		wallet, ok := st.wallets[userID]
		if !ok {
			return domain.ErrWalletNotFound
		}
		cp := *wallet
		out = &cp
		return nil
	})
	return out, err
}

func (r *walletRepository) Apply(_ context.Context, tx *domain.CreditTransaction) (*domain.CreditWallet, error) {
	var out *domain.CreditWallet
	err := r.r.with(func(st *state) error {
		wallet, ok := st.wallets[tx.UserID]
		if !ok {
			if tx.Delta <= 0 {
				return domain.ErrInsufficientCredits
			}
			wallet = &domain.CreditWallet{UserID: tx.UserID}
			st.wallets[tx.UserID] = wallet
		}
		if wallet.Balance+tx.Delta < 0 {
			return domain.ErrInsufficientCredits
		}

		wallet.Balance += tx.Delta
		wallet.Version++
		wallet.UpdatedAt = time.Now()

		tx.CreatedAt = time.Now()
		cp := *tx
		st.transactions = append(st.transactions, &cp)

		w := *wallet
		out = &w
		return nil
	})
	return out, err
}

func (r *walletRepository) ListTransactions(_ context.Context, userID, limit, offset int) ([]*domain.CreditTransaction, error) {
	out := []*domain.CreditTransaction{}
	err := r.r.with(func(st *state) error {
		for _, tx := range st.transactions {
			if tx.UserID == userID {
				cp := *tx
				out = append(out, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*domain.CreditTransaction{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
