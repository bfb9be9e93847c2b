package service

import (
	"context"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

const entityReview = "Review"

// ReviewService manages property reviews.
type ReviewService struct {
	reviews repository.ReviewRepository
	guard   *Guard
	pub     publisher
}

func (s *ReviewService) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return reviews, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, entityReview)
	}
	return review, nil
}

// Create records a review. The user and property must exist.
func (s *ReviewService) Create(ctx context.Context, actor *auth.Principal, input domain.ReviewInput) (*domain.Review, error) {
	if err := s.guard.ValidateInput(input); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireProperty(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:     input.UserID,
		PropertyID: input.PropertyID,
		Rating:     *input.Rating,
		Comment:    input.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, storeError(err, entityReview)
	}
	s.pub.emit(ctx, events.ResourceReview, events.ActionCreated, review.ID, actor, map[string]any{"propertyId": review.PropertyID, "rating": review.Rating})
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, actor *auth.Principal, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	if err := s.guard.ValidatePatch(patch); err != nil {
		return nil, err
	}
	if patch.UserID != nil {
		if err := s.guard.RequireUser(ctx, *patch.UserID); err != nil {
			return nil, err
		}
	}
	if patch.PropertyID != nil {
		if err := s.guard.RequireProperty(ctx, *patch.PropertyID); err != nil {
			return nil, err
		}
	}
	review, err := s.reviews.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, entityReview)
	}
	s.pub.emit(ctx, events.ResourceReview, events.ActionUpdated, id, actor, nil)
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *auth.Principal, id string) (string, error) {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return "", storeError(err, entityReview)
	}
	s.pub.emit(ctx, events.ResourceReview, events.ActionDeleted, id, actor, nil)
	return deletedMessage(entityReview, id), nil
}
