package domain

import "time"

// InterestStatus is the state of a directed connection request.
type InterestStatus string

const (
	InterestSent      InterestStatus = "sent"
	InterestAccepted  InterestStatus = "accepted"
	InterestRejected  InterestStatus = "rejected"
	InterestCancelled InterestStatus = "cancelled"
)

// IsTerminal reports whether no further transition is possible. A new interest
// may be created for the same pair once the previous one is terminal.
func (s InterestStatus) IsTerminal() bool {
	return s == InterestRejected || s == InterestCancelled
}

// IsActive reports whether the interest blocks creation of a new one for the pair.
func (s InterestStatus) IsActive() bool {
	return s == InterestSent || s == InterestAccepted
}

// Interest is a directed connection request between two profiles. Records are
// never deleted; terminal rows remain as an audit trail.
type Interest struct {
	ID         int            `json:"id" db:"id"`
	SenderID   int            `json:"sender_id" db:"sender_id"`
	ReceiverID int            `json:"receiver_id" db:"receiver_id"`
	Status     InterestStatus `json:"status" db:"status"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

func (i *Interest) HasProfile(profileID int) bool {
	return i.SenderID == profileID || i.ReceiverID == profileID
}

func (i *Interest) OtherProfileID(profileID int) (int, bool) {
	if i.SenderID == profileID {
		return i.ReceiverID, true
	}
	if i.ReceiverID == profileID {
		return i.SenderID, true
	}
	return 0, false
}

// PairKey returns the canonical unordered pair (low, high) used to enforce the
// one-active-interest-per-pair constraint.
func PairKey(a, b int) (int, int) {
	if a > b {
		a, b = b, a
	}
	return a, b
}
