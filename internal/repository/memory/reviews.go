package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/repository"
)

type reviewRow = domain.Review

type reviewRepo struct {
	s *Store
}

func (r *reviewRepo) Create(_ context.Context, review *domain.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if r.s.reviews.has(review.ID) {
		return repository.ErrDuplicate
	}
	if err := r.s.requireUser(review.UserID); err != nil {
		return err
	}
	if err := r.s.requireProperty(review.PropertyID); err != nil {
		return err
	}
	now := r.s.timestamp()
	review.CreatedAt, review.UpdatedAt = now, now
	r.s.reviews.put(review.ID, *review)
	return nil
}

func (r *reviewRepo) Update(_ context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	review, ok := r.s.reviews.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.UserID != nil {
		if err := r.s.requireUser(*patch.UserID); err != nil {
			return nil, err
		}
		review.UserID = *patch.UserID
	}
	if patch.PropertyID != nil {
		if err := r.s.requireProperty(*patch.PropertyID); err != nil {
			return nil, err
		}
		review.PropertyID = *patch.PropertyID
	}
	applyValue(&review.Rating, patch.Rating)
	applyValue(&review.Comment, patch.Comment)
	review.UpdatedAt = r.s.timestamp()
	r.s.reviews.put(id, review)
	return &review, nil
}

func (r *reviewRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.reviews.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reviewRepo) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	review, ok := r.s.reviews.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &review, nil
}

func (r *reviewRepo) List(_ context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Review{}
	r.s.reviews.each(func(_ string, rv reviewRow) {
		if filter.PropertyID != "" && rv.PropertyID != filter.PropertyID {
			return
		}
		out = append(out, rv)
	})
	return out, nil
}
