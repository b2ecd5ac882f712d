package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

const pqUniqueViolation = "23505"

type interestRepository struct {
	ext sqlx.ExtContext
}

func (r *interestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	// pair_low/pair_high back the partial unique index that allows at most one
	// non-terminal interest per unordered pair.
	low, high := domain.PairKey(interest.SenderID, interest.ReceiverID)

	query := `
		INSERT INTO interests (sender_id, receiver_id, status, pair_low, pair_high)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.ext.QueryRowxContext(ctx, query, interest.SenderID, interest.ReceiverID, domain.InterestSent, low, high).
		Scan(&interest.ID, &interest.CreatedAt, &interest.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrDuplicateActive
		}
		return fmt.Errorf("failed to create interest: %w", err)
	}

	interest.Status = domain.InterestSent
	return nil
}

func (r *interestRepository) GetByID(ctx context.Context, id int) (*domain.Interest, error) {
	var interest domain.Interest
	query := `SELECT id, sender_id, receiver_id, status, created_at, updated_at FROM interests WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.ext, &interest, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) GetActiveByPair(ctx context.Context, profileA, profileB int) (*domain.Interest, error) {
	low, high := domain.PairKey(profileA, profileB)

	var interest domain.Interest
	query := `
		SELECT id, sender_id, receiver_id, status, created_at, updated_at
		FROM interests
		WHERE pair_low = $1 AND pair_high = $2 AND status IN ('sent', 'accepted')
	`
	if err := sqlx.GetContext(ctx, r.ext, &interest, query, low, high); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) UpdateStatus(ctx context.Context, id int, from, to domain.InterestStatus) (*domain.Interest, error) {
	var interest domain.Interest

	// Compare-and-set: the state check and the write are one statement, so of
	// two racing transitions exactly one commits.
	query := `
		UPDATE interests
		SET status = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status = $2
		RETURNING id, sender_id, receiver_id, status, created_at, updated_at
	`
	err := sqlx.GetContext(ctx, r.ext, &interest, query, id, from, to)
	if err == nil {
		return &interest, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update interest status: %w", err)
	}

	// Zero rows: either the interest does not exist or it is not in "from".
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domain.ErrInvalidTransition
}

func (r *interestRepository) ListSent(ctx context.Context, senderID, limit, offset int) ([]*domain.Interest, error) {
	return r.list(ctx, `sender_id`, senderID, limit, offset)
}

func (r *interestRepository) ListReceived(ctx context.Context, receiverID, limit, offset int) ([]*domain.Interest, error) {
	return r.list(ctx, `receiver_id`, receiverID, limit, offset)
}

func (r *interestRepository) list(ctx context.Context, column string, profileID, limit, offset int) ([]*domain.Interest, error) {
	interests := []*domain.Interest{}
	query := fmt.Sprintf(`
		SELECT id, sender_id, receiver_id, status, created_at, updated_at
		FROM interests
		WHERE %s = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, column)
	if err := sqlx.SelectContext(ctx, r.ext, &interests, query, profileID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	return interests, nil
}
