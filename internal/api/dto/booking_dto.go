package dto

import (
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/staynest/rental-service/internal/domain"
)

// UpdateBookingRequest payload for PUT /bookings/:id.
type UpdateBookingRequest struct {
	UserID         nullable.Nullable[string]               `json:"userId"`
	PropertyID     nullable.Nullable[string]               `json:"propertyId"`
	CheckinDate    nullable.Nullable[time.Time]            `json:"checkinDate"`
	CheckoutDate   nullable.Nullable[time.Time]            `json:"checkoutDate"`
	NumberOfGuests nullable.Nullable[int]                  `json:"numberOfGuests"`
	TotalPrice     nullable.Nullable[float64]              `json:"totalPrice"`
	BookingStatus  nullable.Nullable[domain.BookingStatus] `json:"bookingStatus"`
}

func (r UpdateBookingRequest) ToPatch() (domain.BookingPatch, error) {
	var f presence
	p := domain.BookingPatch{
		UserID:         field(&f, "userId", r.UserID),
		PropertyID:     field(&f, "propertyId", r.PropertyID),
		CheckinDate:    field(&f, "checkinDate", r.CheckinDate),
		CheckoutDate:   field(&f, "checkoutDate", r.CheckoutDate),
		NumberOfGuests: field(&f, "numberOfGuests", r.NumberOfGuests),
		TotalPrice:     field(&f, "totalPrice", r.TotalPrice),
		BookingStatus:  field(&f, "bookingStatus", r.BookingStatus),
	}
	return p, f.err()
}
