package domain

import "time"

// BookingStatus enumerates booking lifecycle states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// Booking reserves a property for a user over a date range.
type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	PropertyID     string        `json:"propertyId"`
	CheckinDate    time.Time     `json:"checkinDate"`
	CheckoutDate   time.Time     `json:"checkoutDate"`
	NumberOfGuests int           `json:"numberOfGuests"`
	TotalPrice     float64       `json:"totalPrice"`
	BookingStatus  BookingStatus `json:"bookingStatus"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// BookingInput is the payload for creating a booking.
type BookingInput struct {
	UserID         string        `json:"userId" validate:"required"`
	PropertyID     string        `json:"propertyId" validate:"required"`
	CheckinDate    time.Time     `json:"checkinDate" validate:"required"`
	CheckoutDate   time.Time     `json:"checkoutDate" validate:"required,gtfield=CheckinDate"`
	NumberOfGuests *int          `json:"numberOfGuests" validate:"required,min=1"`
	TotalPrice     *float64      `json:"totalPrice" validate:"required,gt=0"`
	BookingStatus  BookingStatus `json:"bookingStatus" validate:"omitempty,oneof=pending confirmed canceled"`
}

// BookingPatch carries the explicitly supplied fields of a booking update.
type BookingPatch struct {
	UserID         *string        `json:"userId" validate:"omitempty,min=1"`
	PropertyID     *string        `json:"propertyId" validate:"omitempty,min=1"`
	CheckinDate    *time.Time     `json:"checkinDate"`
	CheckoutDate   *time.Time     `json:"checkoutDate"`
	NumberOfGuests *int           `json:"numberOfGuests" validate:"omitempty,min=1"`
	TotalPrice     *float64       `json:"totalPrice" validate:"omitempty,gt=0"`
	BookingStatus  *BookingStatus `json:"bookingStatus" validate:"omitempty,oneof=pending confirmed canceled"`
}

// IsEmpty reports whether no field was supplied.
func (p BookingPatch) IsEmpty() bool {
	return p.UserID == nil && p.PropertyID == nil && p.CheckinDate == nil && p.CheckoutDate == nil &&
		p.NumberOfGuests == nil && p.TotalPrice == nil && p.BookingStatus == nil
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	UserID string
}
