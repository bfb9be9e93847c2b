package domain

import "time"

// Property is a rentable listing owned by a host.
type Property struct {
	ID            string    `json:"id"`
	HostID        string    `json:"hostId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PricePerNight float64   `json:"pricePerNight"`
	BedroomCount  int       `json:"bedroomCount"`
	BathRoomCount int       `json:"bathRoomCount"`
	MaxGuestCount int       `json:"maxGuestCount"`
	Rating        int       `json:"rating"`
	AmenityIDs    []string  `json:"amenityIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PropertyInput is the payload for creating a property.
type PropertyInput struct {
	HostID        string   `json:"hostId" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	PricePerNight *float64 `json:"pricePerNight" validate:"required,gt=0"`
	BedroomCount  *int     `json:"bedroomCount" validate:"required,min=0"`
	BathRoomCount *int     `json:"bathRoomCount" validate:"required,min=0"`
	MaxGuestCount *int     `json:"maxGuestCount" validate:"required,min=1"`
	Rating        *int     `json:"rating" validate:"omitempty,min=0,max=5"`
	AmenityIDs    []string `json:"amenityIds" validate:"omitempty,dive,required"`
}

// PropertyPatch carries the explicitly supplied fields of a property update.
// A non-nil AmenityIDs replaces the full amenity set.
type PropertyPatch struct {
	HostID        *string   `json:"hostId" validate:"omitempty,min=1"`
	Title         *string   `json:"title" validate:"omitempty,min=1"`
	Description   *string   `json:"description" validate:"omitempty,min=1"`
	Location      *string   `json:"location" validate:"omitempty,min=1"`
	PricePerNight *float64  `json:"pricePerNight" validate:"omitempty,gt=0"`
	BedroomCount  *int      `json:"bedroomCount" validate:"omitempty,min=0"`
	BathRoomCount *int      `json:"bathRoomCount" validate:"omitempty,min=0"`
	MaxGuestCount *int      `json:"maxGuestCount" validate:"omitempty,min=1"`
	Rating        *int      `json:"rating" validate:"omitempty,min=0,max=5"`
	AmenityIDs    *[]string `json:"amenityIds" validate:"omitempty,dive,required"`
}

// IsEmpty reports whether no field was supplied.
func (p PropertyPatch) IsEmpty() bool {
	return p.HostID == nil && p.Title == nil && p.Description == nil && p.Location == nil &&
		p.PricePerNight == nil && p.BedroomCount == nil && p.BathRoomCount == nil &&
		p.MaxGuestCount == nil && p.Rating == nil && p.AmenityIDs == nil
}

// PropertyFilter narrows property listings. Amenity matches by amenity name.
type PropertyFilter struct {
	Location      string
	PricePerNight *float64
	Amenity       string
}
