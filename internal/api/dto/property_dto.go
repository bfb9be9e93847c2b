package dto

import (
	"github.com/oapi-codegen/nullable"

	"github.com/staynest/rental-service/internal/domain"
)

// UpdatePropertyRequest payload for PUT /properties/:id. A present amenityIds
// replaces the full set; an empty array clears it.
type UpdatePropertyRequest struct {
	HostID        nullable.Nullable[string]   `json:"hostId"`
	Title         nullable.Nullable[string]   `json:"title"`
	Description   nullable.Nullable[string]   `json:"description"`
	Location      nullable.Nullable[string]   `json:"location"`
	PricePerNight nullable.Nullable[float64]  `json:"pricePerNight"`
	BedroomCount  nullable.Nullable[int]      `json:"bedroomCount"`
	BathRoomCount nullable.Nullable[int]      `json:"bathRoomCount"`
	MaxGuestCount nullable.Nullable[int]      `json:"maxGuestCount"`
	Rating        nullable.Nullable[int]      `json:"rating"`
	AmenityIDs    nullable.Nullable[[]string] `json:"amenityIds"`
}

func (r UpdatePropertyRequest) ToPatch() (domain.PropertyPatch, error) {
	var f presence
	p := domain.PropertyPatch{
		HostID:        field(&f, "hostId", r.HostID),
		Title:         field(&f, "title", r.Title),
		Description:   field(&f, "description", r.Description),
		Location:      field(&f, "location", r.Location),
		PricePerNight: field(&f, "pricePerNight", r.PricePerNight),
		BedroomCount:  field(&f, "bedroomCount", r.BedroomCount),
		BathRoomCount: field(&f, "bathRoomCount", r.BathRoomCount),
		MaxGuestCount: field(&f, "maxGuestCount", r.MaxGuestCount),
		Rating:        field(&f, "rating", r.Rating),
		AmenityIDs:    field(&f, "amenityIds", r.AmenityIDs),
	}
	if p.AmenityIDs != nil && *p.AmenityIDs == nil {
		p.AmenityIDs = &[]string{}
	}
	return p, f.err()
}
