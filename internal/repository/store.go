package repository

import "context"

// Store aggregates the repositories backed by one database. InTx runs f with a
// Store whose repositories share a single transaction; it commits when f
// returns nil and rolls back otherwise. Mutations that must be atomic as a
// unit (debit plus unlock-record creation, transition plus refund) go through
// InTx, everything else may use the plain Store.
type Store interface {
	Profiles() ProfileRepository
	Interests() InterestRepository
	Wallets() WalletRepository
	Unlocks() UnlockRepository

	InTx(ctx context.Context, f func(s Store) error) error
}
