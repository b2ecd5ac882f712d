// Package memory is an in-memory implementation of the repository interfaces.
// It mirrors the transactional guarantees of the postgres implementation: every
// operation is serialized, and InTx rolls the whole state back when f fails.
// Used by tests and by local runs without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository"
)

type state struct {
	profiles       map[int]*domain.Profile
	interests      map[int]*domain.Interest
	nextInterestID int
	wallets        map[int]*domain.CreditWallet
	transactions   []*domain.CreditTransaction
	unlocks        map[[2]int]*domain.UnlockRecord
}

func newState() *state {
	return &state{
		profiles:       map[int]*domain.Profile{},
		interests:      map[int]*domain.Interest{},
		nextInterestID: 1,
		wallets:        map[int]*domain.CreditWallet{},
		unlocks:        map[[2]int]*domain.UnlockRecord{},
	}
}

func (st *state) clone() *state {
	c := newState()
	c.nextInterestID = st.nextInterestID
	for k, v := range st.profiles {
		p := *v
		c.profiles[k] = &p
	}
	for k, v := range st.interests {
		i := *v
		c.interests[k] = &i
	}
	for k, v := range st.wallets {
		w := *v
		c.wallets[k] = &w
	}
	c.transactions = append(c.transactions, st.transactions...)
	for k, v := range st.unlocks {
		u := *v
		c.unlocks[k] = &u
	}
	return c
}

// runner executes f against a state, with whatever locking the context requires.
type runner interface {
	with(f func(st *state) error) error
}

// Store is the lock-per-operation entry point.
type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) with(f func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.st)
}

func (s *Store) Profiles() repository.ProfileRepository   { return &profileRepository{r: s} }
func (s *Store) Interests() repository.InterestRepository { return &interestRepository{r: s} }
func (s *Store) Wallets() repository.WalletRepository     { return &walletRepository{r: s} }
func (s *Store) Unlocks() repository.UnlockRepository     { return &unlockRepository{r: s} }

// InTx holds the store lock for the duration of f and restores a snapshot of
// the state when f returns an error.
func (s *Store) InTx(_ context.Context, f func(s repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := f(txStore{st: s.st}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// txStore runs against an already-locked state.
type txStore struct {
	st *state
}

func (t txStore) with(f func(st *state) error) error { return f(t.st) }

func (t txStore) Profiles() repository.ProfileRepository   { return &profileRepository{r: t} }
func (t txStore) Interests() repository.InterestRepository { return &interestRepository{r: t} }
func (t txStore) Wallets() repository.WalletRepository     { return &walletRepository{r: t} }
func (t txStore) Unlocks() repository.UnlockRepository     { return &unlockRepository{r: t} }

func (t txStore) InTx(_ context.Context, f func(s repository.Store) error) error {
	return f(t)
}

// SeedProfile inserts a profile, assigning timestamps. Test and dev helper.
func (s *Store) SeedProfile(p *domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	s.st.profiles[p.ID] = &cp
}
