package memory

import (
	"context"
	"time"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type unlockRepository struct {
	r runner
}

func (r *unlockRepository) Get(_ context.Context, viewerID, targetProfileID int) (*domain.UnlockRecord, error) {
	var out *domain.UnlockRecord
	err := r.r.with(func(st *state) error {
		record, ok := st.unlocks[[2]int{viewerID, targetProfileID}]
		if !ok {
			return domain.ErrUnlockNotFound
		}
		cp := *record
		out = &cp
		return nil
	})
	return out, err
}

func (r *unlockRepository) Exists(_ context.Context, viewerID, targetProfileID int) (bool, error) {
	var exists bool
	err := r.r.with(func(st *state) error {
		_, exists = st.unlocks[[2]int{viewerID, targetProfileID}]
		return nil
	})
	return exists, err
}

func (r *unlockRepository) Create(_ context.Context, record *domain.UnlockRecord) error {
	return r.r.with(func(st *state) error {
		key := [2]int{record.ViewerID, record.TargetProfileID}
		if _, ok := st.unlocks[key]; ok {
			return domain.ErrAlreadyUnlocked
		}
		record.CreatedAt = time.Now()
		cp := *record
		st.unlocks[key] = &cp
		return nil
	})
}
