package memory

import (
	"context"
	"sort"
	"time"

	"github.com/biyeghor/biyeghor-backend/internal/domain"
)

type interestRepository struct {
	r runner
}

func (r *interestRepository) Create(_ context.Context, interest *domain.Interest) error {
	return r.r.with(func(st *state) error {
		lowNew, highNew := domain.PairKey(interest.SenderID, interest.ReceiverID)
		for _, existing := range st.interests {
			low, high := domain.PairKey(existing.SenderID, existing.ReceiverID)
			if low == lowNew && high == highNew && existing.Status.IsActive() {
				return domain.ErrDuplicateActive
			}
		}

		now := time.Now()
		interest.ID = st.nextInterestID
		st.nextInterestID++
		interest.Status = domain.InterestSent
		interest.CreatedAt, interest.UpdatedAt = now, now

		cp := *interest
		st.interests[interest.ID] = &cp
		return nil
	})
}

func (r *interestRepository) GetByID(_ context.Context, id int) (*domain.Interest, error) {
	var out *domain.Interest
	err := r.r.with(func(st *state) error {
		interest, ok := st.interests[id]
		if !ok {
			return domain.ErrInterestNotFound
		}
		cp := *interest
		out = &cp
		return nil
	})
	return out, err
}

func (r *interestRepository) GetActiveByPair(_ context.Context, profileA, profileB int) (*domain.Interest, error) {
	lowWant, highWant := domain.PairKey(profileA, profileB)

	var out *domain.Interest
	err := r.r.with(func(st *state) error {
		for _, interest := range st.interests {
			low, high := domain.PairKey(interest.SenderID, interest.ReceiverID)
			if low == lowWant && high == highWant && interest.Status.IsActive() {
				cp := *interest
				out = &cp
				return nil
			}
		}
		return domain.ErrInterestNotFound
	})
	return out, err
}

func (r *interestRepository) UpdateStatus(_ context.Context, id int, from, to domain.InterestStatus) (*domain.Interest, error) {
	var out *domain.Interest
	err := r.r.with(func(st *state) error {
		interest, ok := st.interests[id]
		if !ok {
			return domain.ErrInterestNotFound
		}
		if interest.Status != from {
			return domain.ErrInvalidTransition
		}
		interest.Status = to
		interest.UpdatedAt = time.Now()
		cp := *interest
		out = &cp
		return nil
	})
	return out, err
}

func (r *interestRepository) ListSent(_ context.Context, senderID, limit, offset int) ([]*domain.Interest, error) {
	return r.list(func(i *domain.Interest) bool { return i.SenderID == senderID }, limit, offset)
}

func (r *interestRepository) ListReceived(_ context.Context, receiverID, limit, offset int) ([]*domain.Interest, error) {
	return r.list(func(i *domain.Interest) bool { return i.ReceiverID == receiverID }, limit, offset)
}

func (r *interestRepository) list(match func(*domain.Interest) bool, limit, offset int) ([]*domain.Interest, error) {
	out := []*domain.Interest{}
	err := r.r.with(func(st *state) error {
		for _, interest := range st.interests {
			if match(interest) {
				cp := *interest
				out = append(out, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*domain.Interest{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
