package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/repository"
)

type propertyRow = domain.Property

type propertyRepo struct {
	s *Store
}

func (r *propertyRepo) Create(_ context.Context, property *domain.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	if r.s.properties.has(property.ID) {
		return repository.ErrDuplicate
	}
	if err := r.s.requireHost(property.HostID); err != nil {
		return err
	}
	if err := r.s.requireAmenities(property.AmenityIDs); err != nil {
		return err
	}
	property.AmenityIDs = normalizeIDs(property.AmenityIDs)
	now := r.s.timestamp()
	property.CreatedAt, property.UpdatedAt = now, now
	r.s.properties.put(property.ID, cloneProperty(*property))
	return nil
}

func (r *propertyRepo) Update(_ context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	property, ok := r.s.properties.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	property = cloneProperty(property)
	if patch.HostID != nil {
		if err := r.s.requireHost(*patch.HostID); err != nil {
			return nil, err
		}
		property.HostID = *patch.HostID
	}
	if patch.AmenityIDs != nil {
		if err := r.s.requireAmenities(*patch.AmenityIDs); err != nil {
			return nil, err
		}
		property.AmenityIDs = normalizeIDs(*patch.AmenityIDs)
	}
	applyValue(&property.Title, patch.Title)
	applyValue(&property.Description, patch.Description)
	applyValue(&property.Location, patch.Location)
	applyValue(&property.PricePerNight, patch.PricePerNight)
	applyValue(&property.BedroomCount, patch.BedroomCount)
	applyValue(&property.BathRoomCount, patch.BathRoomCount)
	applyValue(&property.MaxGuestCount, patch.MaxGuestCount)
	applyValue(&property.Rating, patch.Rating)
	property.UpdatedAt = r.s.timestamp()
	r.s.properties.put(id, property)

	out := cloneProperty(property)
	return &out, nil
}

func (r *propertyRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.properties.remove(id) {
		return repository.ErrNotFound
	}
	r.s.cascadeProperty(id)
	return nil
}

func (r *propertyRepo) GetByID(_ context.Context, id string) (*domain.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	property, ok := r.s.properties.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneProperty(property)
	return &out, nil
}

func (r *propertyRepo) List(_ context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Property{}
	r.s.properties.each(func(_ string, p propertyRow) {
		if filter.Location != "" && !containsFold(p.Location, filter.Location) {
			return
		}
		if filter.PricePerNight != nil && p.PricePerNight != *filter.PricePerNight {
			return
		}
		if filter.Amenity != "" && !r.offers(p, filter.Amenity) {
			return
		}
		out = append(out, cloneProperty(p))
	})
	return out, nil
}

// offers reports whether p links an amenity with the given name.
func (r *propertyRepo) offers(p propertyRow, name string) bool {
	for _, id := range p.AmenityIDs {
		if a, ok := r.s.amenities.get(id); ok && equalFold(a.Name, name) {
			return true
		}
	}
	return false
}

func cloneProperty(p domain.Property) domain.Property {
	p.AmenityIDs = slices.Clone(p.AmenityIDs)
	if p.AmenityIDs == nil {
		p.AmenityIDs = []string{}
	}
	return p
}

// normalizeIDs sorts and de-duplicates, matching the ordering the SQL store returns.
func normalizeIDs(ids []string) []string {
	out := append([]string{}, ids...)
	slices.Sort(out)
	return slices.Compact(out)
}
