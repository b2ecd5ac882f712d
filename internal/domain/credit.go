package domain

import "time"

// TransactionReason classifies ledger entries.
type TransactionReason string

const (
	ReasonPurchase    TransactionReason = "purchase"
	ReasonUnlockSpend TransactionReason = "unlock_spend"
	ReasonRefund      TransactionReason = "refund"
	ReasonInterestFee TransactionReason = "interest_fee"
)

// CreditWallet holds a user's spendable credit balance. The balance is only
// ever changed together with an appended CreditTransaction, inside one
// database transaction; it must always equal the sum of the user's deltas.
type CreditWallet struct {
	UserID    int       `json:"user_id" db:"user_id"`
	Balance   int       `json:"balance" db:"balance"`
	Version   int64     `json:"version" db:"version"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreditTransaction is an append-only ledger entry. Entries are never mutated
// or deleted.
type CreditTransaction struct {
	ID          string            `json:"id" db:"id"`
	UserID      int               `json:"user_id" db:"user_id"`
	Delta       int               `json:"delta" db:"delta"`
	Reason      TransactionReason `json:"reason" db:"reason"`
	ReferenceID string            `json:"reference_id" db:"reference_id"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
}

// UnlockRecord grants the viewer permanent visibility of the target profile's
// gated fields. At most one record exists per (viewer, target) pair.
type UnlockRecord struct {
	ViewerID        int       `json:"viewer_id" db:"viewer_id"`
	TargetProfileID int       `json:"target_profile_id" db:"target_profile_id"`
	UnitCost        int       `json:"unit_cost" db:"unit_cost"`
	TransactionID   string    `json:"transaction_id" db:"transaction_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
