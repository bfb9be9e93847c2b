package domain

// Amenity is a feature a property can offer (wifi, pool, ...).
type Amenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AmenityInput is the payload for creating an amenity.
type AmenityInput struct {
	Name string `json:"name" validate:"required"`
}

// AmenityPatch carries the explicitly supplied fields of an amenity update.
type AmenityPatch struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

// IsEmpty reports whether no field was supplied.
func (p AmenityPatch) IsEmpty() bool {
	return p.Name == nil
}
