// Package postgres is the sqlx implementation of the repository interfaces.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/biyeghor/biyeghor-backend/internal/repository"
)

type store struct {
	db  *sqlx.DB // nil when the store is already transactional
	ext sqlx.ExtContext
}

// NewStore creates a Store backed by the given database.
func NewStore(db *sqlx.DB) repository.Store {
	return &store{db: db, ext: db}
}

func (s *store) Profiles() repository.ProfileRepository  { return &profileRepository{ext: s.ext} }
func (s *store) Interests() repository.InterestRepository { return &interestRepository{ext: s.ext} }
func (s *store) Wallets() repository.WalletRepository    { return &walletRepository{st: s} }
func (s *store) Unlocks() repository.UnlockRepository    { return &unlockRepository{ext: s.ext} }

// InTx runs f within a single database transaction. Nested calls reuse the
// surrounding transaction.
func (s *store) InTx(ctx context.Context, f func(s repository.Store) error) error {
	if s.db == nil {
		return f(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := f(&store{ext: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback tx: %s: %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}
