package domain

import "errors"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrInterestNotFound = errors.New("interest not found")
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrUnlockNotFound   = errors.New("unlock record not found")

	// ErrSelfInterest is returned when a profile tries to send an interest to itself.
	ErrSelfInterest = errors.New("cannot send interest to yourself")

	// ErrDuplicateActive is returned when a sent or accepted interest already
	// exists between the pair, in either direction.
	ErrDuplicateActive = errors.New("an active interest already exists for this pair")

	// ErrNotAuthorized is returned when the actor is neither the sender nor the
	// receiver required for the attempted transition.
	ErrNotAuthorized = errors.New("not authorized to act on this interest")

	// ErrInvalidTransition is returned when the interest is not in the state the
	// transition requires. Callers racing on the same interest observe this on loss.
	ErrInvalidTransition = errors.New("invalid interest state transition")

	// ErrInsufficientCredits is returned by debits that would take a wallet below zero.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrAlreadyUnlocked is the storage-level conflict signal for a duplicate
	// unlock record. The unlock use case resolves it to an idempotent success.
	ErrAlreadyUnlocked = errors.New("profile already unlocked")

	// ErrInterestNotAccepted is returned when unlocking requires an accepted
	// interest between the pair and none exists.
	ErrInterestNotAccepted = errors.New("no accepted interest between profiles")

	// ErrSelfUnlock is returned when a profile tries to unlock itself; owners
	// always see their own gated fields.
	ErrSelfUnlock = errors.New("cannot unlock your own profile")
)
