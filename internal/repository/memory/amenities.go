package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/repository"
)

type amenityRow = domain.Amenity

type amenityRepo struct {
	s *Store
}

func (r *amenityRepo) Create(_ context.Context, amenity *domain.Amenity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if amenity.ID == "" {
		amenity.ID = uuid.NewString()
	}
	if r.s.amenities.has(amenity.ID) || r.taken("", amenity.Name) {
		return repository.ErrDuplicate
	}
	r.s.amenities.put(amenity.ID, *amenity)
	return nil
}

func (r *amenityRepo) Update(_ context.Context, id string, patch domain.AmenityPatch) (*domain.Amenity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	amenity, ok := r.s.amenities.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	applyValue(&amenity.Name, patch.Name)
	if r.taken(id, amenity.Name) {
		return nil, repository.ErrDuplicate
	}
	r.s.amenities.put(id, amenity)
	return &amenity, nil
}

func (r *amenityRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.amenities.remove(id) {
		return repository.ErrNotFound
	}
	r.s.cascadeAmenity(id)
	return nil
}

func (r *amenityRepo) GetByID(_ context.Context, id string) (*domain.Amenity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	amenity, ok := r.s.amenities.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &amenity, nil
}

func (r *amenityRepo) List(_ context.Context) ([]domain.Amenity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Amenity{}
	r.s.amenities.each(func(_ string, a amenityRow) {
		out = append(out, a)
	})
	slices.SortFunc(out, func(a, b domain.Amenity) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *amenityRepo) taken(selfID, name string) bool {
	clash := false
	r.s.amenities.each(func(id string, a amenityRow) {
		if id != selfID && a.Name == name {
			clash = true
		}
	})
	return clash
}
