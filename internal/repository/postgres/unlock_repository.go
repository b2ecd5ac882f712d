package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type unlockRepository struct {
	ext sqlx.ExtContext
}

func (r *unlockRepository) Get(ctx context.Context, viewerID, targetProfileID int) (*domain.UnlockRecord, error) {
	var record domain.UnlockRecord
	query := `
		SELECT viewer_id, target_profile_id, unit_cost, transaction_id, created_at
		FROM unlock_records
		WHERE viewer_id = $1 AND target_profile_id = $2
	`
	if err := sqlx.GetContext(ctx, r.ext, &record, query, viewerID, targetProfileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnlockNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *unlockRepository) Exists(ctx context.Context, viewerID, targetProfileID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM unlock_records WHERE viewer_id = $1 AND target_profile_id = $2)`
	if err := sqlx.GetContext(ctx, r.ext, &exists, query, viewerID, targetProfileID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *unlockRepository) Create(ctx context.Context, record *domain.UnlockRecord) error {
	// ON CONFLICT DO NOTHING turns the concurrent double-unlock into zero
	// affected rows instead of an aborted transaction.
	query := `
		INSERT INTO unlock_records (viewer_id, target_profile_id, unit_cost, transaction_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (viewer_id, target_profile_id) DO NOTHING
		RETURNING created_at
	`
	err := r.ext.QueryRowxContext(ctx, query, record.ViewerID, record.TargetProfileID, record.UnitCost, record.TransactionID).
		Scan(&record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrAlreadyUnlocked
		}
		return fmt.Errorf("failed to create unlock record: %w", err)
	}
	return nil
}
