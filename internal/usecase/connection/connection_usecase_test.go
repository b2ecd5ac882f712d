package connection_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository/memory"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/connection"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/credit"
)

const (
	alice = 1
	bob   = 2
	carol = 3
)

func newFixture(t *testing.T, policy connection.Policy) (*connection.ConnectionUseCase, *credit.LedgerUseCase, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.SeedProfile(&domain.Profile{ID: alice, UserID: alice, Name: "Alice", Gender: "female"})
	store.SeedProfile(&domain.Profile{ID: bob, UserID: bob, Name: "Bob", Gender: "male"})
	store.SeedProfile(&domain.Profile{ID: carol, UserID: carol, Name: "Carol", Gender: "female"})

	ledger := credit.NewLedgerUseCase(store)
	return connection.NewConnectionUseCase(store, ledger, policy), ledger, store
}

func TestSendInterest(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})

		interest, err := uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)
		assert.Equal(t, domain.InterestSent, interest.Status)
		assert.Equal(t, alice, interest.SenderID)
		assert.Equal(t, bob, interest.ReceiverID)
		assert.NotZero(t, interest.ID)
	})

	t.Run("to self", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})

		_, err := uc.SendInterest(ctx, alice, alice)
		assert.ErrorIs(t, err, domain.ErrSelfInterest)
	})

	t.Run("to missing profile", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})

		_, err := uc.SendInterest(ctx, alice, 999)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("duplicate in either direction", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})

		_, err := uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)

		_, err = uc.SendInterest(ctx, alice, bob)
		assert.ErrorIs(t, err, domain.ErrDuplicateActive)

		_, err = uc.SendInterest(ctx, bob, alice)
		assert.ErrorIs(t, err, domain.ErrDuplicateActive)
	})

	t.Run("balance gate", func(t *testing.T) {
		uc, ledger, _ := newFixture(t, connection.Policy{MinBalanceToSend: 20})

		_, err := uc.SendInterest(ctx, alice, bob)
		assert.ErrorIs(t, err, domain.ErrInsufficientCredits)

		_, err = ledger.Credit(ctx, alice, 20, domain.ReasonPurchase, "pay-001")
		require.NoError(t, err)

		_, err = uc.SendInterest(ctx, alice, bob)
		assert.NoError(t, err)
	})

	t.Run("fee charged atomically with creation", func(t *testing.T) {
		uc, ledger, _ := newFixture(t, connection.Policy{InterestFee: 5})

		_, err := ledger.Credit(ctx, alice, 5, domain.ReasonPurchase, "pay-001")
		require.NoError(t, err)

		_, err = uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)

		wallet, err := ledger.Balance(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, 0, wallet.Balance)

		// Carol cannot afford the fee; neither the interest nor the debit lands.
		_, err = uc.SendInterest(ctx, carol, bob)
		assert.ErrorIs(t, err, domain.ErrInsufficientCredits)

		active, err := uc.ActiveBetween(ctx, carol, bob)
		require.NoError(t, err)
		assert.Nil(t, active)
	})
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("accept by receiver", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})
		interest, err := uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)

		updated, err := uc.Accept(ctx, interest.ID, bob)
		require.NoError(t, err)
		assert.Equal(t, domain.InterestAccepted, updated.Status)
	})

	t.Run("accept by sender is forbidden", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})
		interest, err := uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)

		_, err = uc.Accept(ctx, interest.ID, alice)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("accept by third party is forbidden", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})
		interest, err := uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)

		_, err = uc.Accept(ctx, interest.ID, carol)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("accept twice", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})
		interest, err := uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)

		_, err = uc.Accept(ctx, interest.ID, bob)
		require.NoError(t, err)

		_, err = uc.Accept(ctx, interest.ID, bob)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("cancel by sender", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})
		interest, err := uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)

		updated, err := uc.Cancel(ctx, interest.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.InterestCancelled, updated.Status)

		_, err = uc.Cancel(ctx, interest.ID, bob)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("cancel after accept", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})
		interest, err := uc.SendInterest(ctx, alice, bob)
		require.NoError(t, err)

		_, err = uc.Accept(ctx, interest.ID, bob)
		require.NoError(t, err)

		_, err = uc.Cancel(ctx, interest.ID, alice)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("unknown interest", func(t *testing.T) {
		uc, _, _ := newFixture(t, connection.Policy{})

		_, err := uc.Accept(ctx, 999, bob)
		assert.ErrorIs(t, err, domain.ErrInterestNotFound)
	})
}

func TestRejectRefundsFee(t *testing.T) {
	ctx := context.Background()
	uc, ledger, _ := newFixture(t, connection.Policy{InterestFee: 5})

	_, err := ledger.Credit(ctx, alice, 10, domain.ReasonPurchase, "pay-001")
	require.NoError(t, err)

	interest, err := uc.SendInterest(ctx, alice, bob)
	require.NoError(t, err)

	wallet, err := ledger.Balance(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, 5, wallet.Balance)

	updated, err := uc.Reject(ctx, interest.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, domain.InterestRejected, updated.Status)

	wallet, err = ledger.Balance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 10, wallet.Balance)

	history, err := ledger.History(ctx, alice, 100, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)

	var refunds int
	for _, tx := range history {
		if tx.Reason == domain.ReasonRefund {
			refunds++
			assert.Equal(t, 5, tx.Delta)
		}
	}
	assert.Equal(t, 1, refunds)
}

func TestResendAfterTerminal(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newFixture(t, connection.Policy{})

	first, err := uc.SendInterest(ctx, alice, bob)
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, first.ID, alice)
	require.NoError(t, err)

	second, err := uc.SendInterest(ctx, bob, alice)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.InterestSent, second.Status)
}

func TestConcurrentTransitions(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newFixture(t, connection.Policy{})

	interest, err := uc.SendInterest(ctx, alice, bob)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := uc.Accept(ctx, interest.ID, bob)
		results <- err
	}()
	go func() {
		defer wg.Done()
		_, err := uc.Cancel(ctx, interest.ID, alice)
		results <- err
	}()
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case err == domain.ErrInvalidTransition:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newFixture(t, connection.Policy{})

	_, err := uc.SendInterest(ctx, alice, bob)
	require.NoError(t, err)
	_, err = uc.SendInterest(ctx, alice, carol)
	require.NoError(t, err)

	sent, err := uc.List(ctx, alice, "sent", 50, 0)
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "Alice", sent[0].Sender.Name)
	assert.NotNil(t, sent[0].Receiver)

	received, err := uc.List(ctx, bob, "received", 50, 0)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, bob, received[0].ReceiverID)

	none, err := uc.List(ctx, carol, "sent", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
