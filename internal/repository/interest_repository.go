package repository

import (
	"context"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type InterestRepository interface {
	// Create inserts a new interest in state "sent". Returns
	// domain.ErrDuplicateActive when a non-terminal interest already exists for
	// the unordered pair, in either direction.
	Create(ctx context.Context, interest *domain.Interest) error

	GetByID(ctx context.Context, id int) (*domain.Interest, error)

	// GetActiveByPair returns the single non-terminal interest between the two
	// profiles regardless of direction, or domain.ErrInterestNotFound.
	GetActiveByPair(ctx context.Context, profileA, profileB int) (*domain.Interest, error)

	// UpdateStatus transitions the interest from the expected current status to
	// the new one as one atomic compare-and-set. Returns
	// domain.ErrInvalidTransition when the row exists but is not in "from", and
	// domain.ErrInterestNotFound when it does not exist.
	UpdateStatus(ctx context.Context, id int, from, to domain.InterestStatus) (*domain.Interest, error)

	ListSent(ctx context.Context, senderID, limit, offset int) ([]*domain.Interest, error)
	ListReceived(ctx context.Context, receiverID, limit, offset int) ([]*domain.Interest, error)
}
