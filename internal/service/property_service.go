package service

import (
	"context"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// PropertyService manages listings and their amenity links.
type PropertyService struct {
	properties repository.PropertyRepository
	guard      *Guard
	pub        publisher
}

// List returns properties matching filter.
func (s *PropertyService) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	properties, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return properties, nil
}

// Get fetches a property by id.
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, repository.EntityProperty)
	}
	return property, nil
}

// Create lists a new property for an existing host.
func (s *PropertyService) Create(ctx context.Context, actor *auth.Principal, input domain.PropertyInput) (*domain.Property, error) {
	if err := s.guard.ValidateInput(input); err != nil {
		return nil, err
	}
	if err := s.guard.RequireHost(ctx, input.HostID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireAmenities(ctx, input.AmenityIDs); err != nil {
		return nil, err
	}

	property := &domain.Property{
		HostID:        input.HostID,
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		PricePerNight: *input.PricePerNight,
		BedroomCount:  *input.BedroomCount,
		BathRoomCount: *input.BathRoomCount,
		MaxGuestCount: *input.MaxGuestCount,
		AmenityIDs:    input.AmenityIDs,
	}
	if input.Rating != nil {
		property.Rating = *input.Rating
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, storeError(err, repository.EntityProperty)
	}
	s.pub.emit(ctx, events.ResourceProperty, events.ActionCreated, property.ID, actor, nil)
	return property, nil
}

// Update applies patch. A supplied amenity list replaces the current links.
func (s *PropertyService) Update(ctx context.Context, actor *auth.Principal, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	if err := s.guard.ValidatePatch(patch); err != nil {
		return nil, err
	}
	if patch.HostID != nil {
		if err := s.guard.RequireHost(ctx, *patch.HostID); err != nil {
			return nil, err
		}
	}
	if patch.AmenityIDs != nil {
		if err := s.guard.RequireAmenities(ctx, *patch.AmenityIDs); err != nil {
			return nil, err
		}
	}
	property, err := s.properties.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, repository.EntityProperty)
	}
	s.pub.emit(ctx, events.ResourceProperty, events.ActionUpdated, id, actor, nil)
	return property, nil
}

// Delete removes a property with its bookings, reviews and amenity links.
func (s *PropertyService) Delete(ctx context.Context, actor *auth.Principal, id string) (string, error) {
	if err := s.properties.Delete(ctx, id); err != nil {
		return "", storeError(err, repository.EntityProperty)
	}
	s.pub.emit(ctx, events.ResourceProperty, events.ActionDeleted, id, actor, nil)
	return deletedMessage(repository.EntityProperty, id), nil
}
