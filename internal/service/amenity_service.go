package service

import (
	"context"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// AmenityService manages the amenity catalogue.
type AmenityService struct {
	amenities repository.AmenityRepository
	guard     *Guard
	pub       publisher
}

func (s *AmenityService) List(ctx context.Context) ([]domain.Amenity, error) {
	amenities, err := s.amenities.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return amenities, nil
}

func (s *AmenityService) Get(ctx context.Context, id string) (*domain.Amenity, error) {
	amenity, err := s.amenities.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.EntityAmenity)
	}
	return amenity, nil
}

func (s *AmenityService) Create(ctx context.Context, actor *auth.Principal, input domain.AmenityInput) (*domain.Amenity, error) {
	if err := s.guard.ValidateInput(input); err != nil {
		return nil, err
	}
	amenity := &domain.Amenity{Name: input.Name}
	if err := s.amenities.Create(ctx, amenity); err != nil {
		return nil, storeError(err, repository.EntityAmenity)
	}
	s.pub.emit(ctx, events.ResourceAmenity, events.ActionCreated, amenity.ID, actor, nil)
	return amenity, nil
}

func (s *AmenityService) Update(ctx context.Context, actor *auth.Principal, id string, patch domain.AmenityPatch) (*domain.Amenity, error) {
	if err := s.guard.ValidatePatch(patch); err != nil {
		return nil, err
	}
	amenity, err := s.amenities.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, repository.EntityAmenity)
	}
	s.pub.emit(ctx, events.ResourceAmenity, events.ActionUpdated, id, actor, nil)
	return amenity, nil
}

// Delete removes an amenity and unlinks it from every property.
func (s *AmenityService) Delete(ctx context.Context, actor *auth.Principal, id string) (string, error) {
	if err := s.amenities.Delete(ctx, id); err != nil {
		return "", storeError(err, repository.EntityAmenity)
	}
	s.pub.emit(ctx, events.ResourceAmenity, events.ActionDeleted, id, actor, nil)
	return deletedMessage(repository.EntityAmenity, id), nil
}
