package dto

import (
	"github.com/oapi-codegen/nullable"

	"github.com/staynest/rental-service/internal/domain"
)

// UpdateAmenityRequest payload for PUT /amenities/:id.
type UpdateAmenityRequest struct {
	Name nullable.Nullable[string] `json:"name"`
}

func (r UpdateAmenityRequest) ToPatch() (domain.AmenityPatch, error) {
	var f presence
	p := domain.AmenityPatch{Name: field(&f, "name", r.Name)}
	return p, f.err()
}
