package domain

import "time"

// Review is a user's rating of a property.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PropertyID string    `json:"propertyId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ReviewInput is the payload for creating a review.
type ReviewInput struct {
	UserID     string `json:"userId" validate:"required"`
	PropertyID string `json:"propertyId" validate:"required"`
	Rating     *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// ReviewPatch carries the explicitly supplied fields of a review update.
type ReviewPatch struct {
	UserID     *string `json:"userId" validate:"omitempty,min=1"`
	PropertyID *string `json:"propertyId" validate:"omitempty,min=1"`
	Rating     *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment    *string `json:"comment"`
}

// IsEmpty reports whether no field was supplied.
func (p ReviewPatch) IsEmpty() bool {
	return p.UserID == nil && p.PropertyID == nil && p.Rating == nil && p.Comment == nil
}

// ReviewFilter narrows review listings.
type ReviewFilter struct {
	PropertyID string
}
