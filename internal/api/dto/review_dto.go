package dto

import (
	"github.com/oapi-codegen/nullable"

	"github.com/staynest/rental-service/internal/domain"
)

// UpdateReviewRequest payload for PUT /reviews/:id.
type UpdateReviewRequest struct {
	UserID     nullable.Nullable[string] `json:"userId"`
	PropertyID nullable.Nullable[string] `json:"propertyId"`
	Rating     nullable.Nullable[int]    `json:"rating"`
	Comment    nullable.Nullable[string] `json:"comment"`
}

func (r UpdateReviewRequest) ToPatch() (domain.ReviewPatch, error) {
	var f presence
	p := domain.ReviewPatch{
		UserID:     field(&f, "userId", r.UserID),
		PropertyID: field(&f, "propertyId", r.PropertyID),
		Rating:     field(&f, "rating", r.Rating),
		Comment:    field(&f, "comment", r.Comment),
	}
	return p, f.err()
}
