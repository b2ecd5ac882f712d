// Package connection orchestrates the interest state machine: send, accept,
// reject and cancel. State transitions are delegated to the interest
// repository's atomic compare-and-set; ledger side effects (send fee, refund
// on rejection) join the transition in one storage transaction.
package connection

import (
	"context"
	"fmt"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/credit"
)

// Policy configures send-side checks. MinBalanceToSend of zero disables the
// balance gate; InterestFee of zero makes sending free (and rejections refund
// nothing).
type Policy struct {
	MinBalanceToSend int
	InterestFee      int
}

type ConnectionUseCase struct {
	store  repository.Store
	ledger *credit.LedgerUseCase
	policy Policy
}

func NewConnectionUseCase(store repository.Store, ledger *credit.LedgerUseCase, policy Policy) *ConnectionUseCase {
	return &ConnectionUseCase{store: store, ledger: ledger, policy: policy}
}

// InterestWithProfiles is the listing payload: one explicit schema with both
// ids always populated plus embedded summaries of the two profiles.
type InterestWithProfiles struct {
	*domain.Interest
	Sender   *domain.ProfileSummary `json:"sender,omitempty"`
	Receiver *domain.ProfileSummary `json:"receiver,omitempty"`
}

// SendInterest creates a new interest from sender to receiver in state "sent".
func (uc *ConnectionUseCase) SendInterest(ctx context.Context, senderID, receiverID int) (*domain.Interest, error) {
	if senderID == receiverID {
		return nil, domain.ErrSelfInterest
	}

	if _, err := uc.store.Profiles().GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	if uc.policy.MinBalanceToSend > 0 {
		wallet, err := uc.ledger.Balance(ctx, senderID)
		if err != nil {
			return nil, err
		}
		if wallet.Balance < uc.policy.MinBalanceToSend {
			return nil, domain.ErrInsufficientCredits
		}
	}

	interest := &domain.Interest{SenderID: senderID, ReceiverID: receiverID}

	err := uc.store.InTx(ctx, func(s repository.Store) error {
		if err := s.Interests().Create(ctx, interest); err != nil {
			return err
		}
		if uc.policy.InterestFee > 0 {
			reference := fmt.Sprintf("interest:%d", interest.ID)
			if _, _, err := uc.ledger.WithStore(s).Debit(ctx, senderID, uc.policy.InterestFee, domain.ReasonInterestFee, reference); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return interest, nil
}

// Accept transitions a sent interest to accepted. Only the receiver may accept.
func (uc *ConnectionUseCase) Accept(ctx context.Context, interestID, actorID int) (*domain.Interest, error) {
	interest, err := uc.authorize(ctx, interestID, actorID, false)
	if err != nil {
		return nil, err
	}
	return uc.store.Interests().UpdateStatus(ctx, interest.ID, domain.InterestSent, domain.InterestAccepted)
}

// Reject transitions a sent interest to rejected and refunds the send fee to
// the sender. The transition and the refund commit together.
func (uc *ConnectionUseCase) Reject(ctx context.Context, interestID, actorID int) (*domain.Interest, error) {
	interest, err := uc.authorize(ctx, interestID, actorID, false)
	if err != nil {
		return nil, err
	}

	var updated *domain.Interest
	err = uc.store.InTx(ctx, func(s repository.Store) error {
		var err error
		updated, err = s.Interests().UpdateStatus(ctx, interest.ID, domain.InterestSent, domain.InterestRejected)
		if err != nil {
			return err
		}
		if uc.policy.InterestFee > 0 {
			reference := fmt.Sprintf("interest:%d", interest.ID)
			if _, err := uc.ledger.WithStore(s).Credit(ctx, interest.SenderID, uc.policy.InterestFee, domain.ReasonRefund, reference); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel transitions a sent interest to cancelled. Only the sender may cancel.
func (uc *ConnectionUseCase) Cancel(ctx context.Context, interestID, actorID int) (*domain.Interest, error) {
	interest, err := uc.authorize(ctx, interestID, actorID, true)
	if err != nil {
		return nil, err
	}
	return uc.store.Interests().UpdateStatus(ctx, interest.ID, domain.InterestSent, domain.InterestCancelled)
}

// authorize loads the interest and checks the actor is the right party.
// Authorization is checked against immutable fields, so a concurrent status
// change between this read and the compare-and-set cannot bypass it.
func (uc *ConnectionUseCase) authorize(ctx context.Context, interestID, actorID int, asSender bool) (*domain.Interest, error) {
	interest, err := uc.store.Interests().GetByID(ctx, interestID)
	if err != nil {
		return nil, err
	}
	if asSender && interest.SenderID != actorID {
		return nil, domain.ErrNotAuthorized
	}
	if !asSender && interest.ReceiverID != actorID {
		return nil, domain.ErrNotAuthorized
	}
	return interest, nil
}

// ActiveBetween returns the current non-terminal interest between the pair,
// or nil when there is none.
func (uc *ConnectionUseCase) ActiveBetween(ctx context.Context, profileA, profileB int) (*domain.Interest, error) {
	interest, err := uc.store.Interests().GetActiveByPair(ctx, profileA, profileB)
	if err == domain.ErrInterestNotFound {
		return nil, nil
	}
	return interest, err
}

// List returns the profile's interests, box "sent" or "received", with
// embedded profile summaries.
func (uc *ConnectionUseCase) List(ctx context.Context, profileID int, box string, limit, offset int) ([]*InterestWithProfiles, error) {
	var (
		interests []*domain.Interest
		err       error
	)
	switch box {
	case "received":
		interests, err = uc.store.Interests().ListReceived(ctx, profileID, limit, offset)
	default:
		interests, err = uc.store.Interests().ListSent(ctx, profileID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*InterestWithProfiles, 0, len(interests))
	for _, interest := range interests {
		item := &InterestWithProfiles{Interest: interest}
		if sender, err := uc.store.Profiles().GetByID(ctx, interest.SenderID); err == nil {
			s := sender.Summary()
			item.Sender = &s
		}
		if receiver, err := uc.store.Profiles().GetByID(ctx, interest.ReceiverID); err == nil {
			r := receiver.Summary()
			item.Receiver = &r
		}
		out = append(out, item)
	}
	return out, nil
}
