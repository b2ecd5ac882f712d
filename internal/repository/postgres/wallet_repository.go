package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository"
)

type walletRepository struct {
	st *store
}

func (r *walletRepository) Get(ctx context.Context, userID int) (*domain.CreditWallet, error) {
	var wallet domain.CreditWallet
	query := `SELECT user_id, balance, version, updated_at FROM credit_wallets WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, r.st.ext, &wallet, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) Apply(ctx context.Context, tx *domain.CreditTransaction) (*domain.CreditWallet, error) {
	var wallet *domain.CreditWallet

	err := r.st.InTx(ctx, func(s repository.Store) error {
		ts := s.(*store)

		w, err := applyDelta(ctx, ts.ext, tx.UserID, tx.Delta)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO credit_transactions (id, user_id, delta, reason, reference_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`
		if err := ts.ext.QueryRowxContext(ctx, query, tx.ID, tx.UserID, tx.Delta, tx.Reason, tx.ReferenceID).
			Scan(&tx.CreatedAt); err != nil {
			return fmt.Errorf("failed to append credit transaction: %w", err)
		}

		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// applyDelta adjusts the balance in one guarded statement. A credit upserts
// the wallet; a debit refuses to take the balance below zero.
func applyDelta(ctx context.Context, ext sqlx.ExtContext, userID, delta int) (*domain.CreditWallet, error) {
	var wallet domain.CreditWallet

	if delta > 0 {
		query := `
			INSERT INTO credit_wallets (user_id, balance, version)
			VALUES ($1, $2, 1)
			ON CONFLICT (user_id) DO UPDATE
			SET balance = credit_wallets.balance + $2,
			    version = credit_wallets.version + 1,
			    updated_at = CURRENT_TIMESTAMP
			RETURNING user_id, balance, version, updated_at
		`
		if err := sqlx.GetContext(ctx, ext, &wallet, query, userID, delta); err != nil {
			return nil, fmt.Errorf("failed to credit wallet: %w", err)
		}
		return &wallet, nil
	}

	query := `
		UPDATE credit_wallets
		SET balance = balance + $2,
		    version = version + 1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND balance + $2 >= 0
		RETURNING user_id, balance, version, updated_at
	`
	err := sqlx.GetContext(ctx, ext, &wallet, query, userID, delta)
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}
	// Zero rows means the guard failed or the wallet was never created; a user
	// without a wallet has a zero balance either way.
	return nil, domain.ErrInsufficientCredits
}

func (r *walletRepository) ListTransactions(ctx context.Context, userID, limit, offset int) ([]*domain.CreditTransaction, error) {
	transactions := []*domain.CreditTransaction{}
	query := `
		SELECT id, user_id, delta, reason, reference_id, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := sqlx.SelectContext(ctx, r.st.ext, &transactions, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list credit transactions: %w", err)
	}
	return transactions, nil
}
