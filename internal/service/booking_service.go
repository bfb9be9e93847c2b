package service

import (
	"context"
	"time"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

const entityBooking = "Booking"

// BookingService manages reservations.
type BookingService struct {
	bookings repository.BookingRepository
	guard    *Guard
	pub      publisher
}

// BookingEventPayload is attached to booking events for downstream consumers.
type BookingEventPayload struct {
	UserID        string               `json:"userId"`
	PropertyID    string               `json:"propertyId"`
	CheckinDate   time.Time            `json:"checkinDate"`
	CheckoutDate  time.Time            `json:"checkoutDate"`
	BookingStatus domain.BookingStatus `json:"bookingStatus"`
}

func bookingPayload(b *domain.Booking) BookingEventPayload {
	return BookingEventPayload{
		UserID:        b.UserID,
		PropertyID:    b.PropertyID,
		CheckinDate:   b.CheckinDate,
		CheckoutDate:  b.CheckoutDate,
		BookingStatus: b.BookingStatus,
	}
}

// List returns bookings matching filter.
func (s *BookingService) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return bookings, nil
}

// Get fetches a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, entityBooking)
	}
	return booking, nil
}

// Create books a property for a user. Both must exist.
func (s *BookingService) Create(ctx context.Context, actor *auth.Principal, input domain.BookingInput) (*domain.Booking, error) {
	if err := s.guard.ValidateInput(input); err != nil {
		return nil, err
	}
	if err := s.guard.RequireUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireProperty(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	status := input.BookingStatus
	if status == "" {
		status = domain.BookingStatusPending
	}
	booking := &domain.Booking{
		UserID:         input.UserID,
		PropertyID:     input.PropertyID,
		CheckinDate:    input.CheckinDate,
		CheckoutDate:   input.CheckoutDate,
		NumberOfGuests: *input.NumberOfGuests,
		TotalPrice:     *input.TotalPrice,
		BookingStatus:  status,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, storeError(err, entityBooking)
	}
	s.pub.emit(ctx, events.ResourceBooking, events.ActionCreated, booking.ID, actor, bookingPayload(booking))
	return booking, nil
}

// Update applies patch. When only one date is supplied it is checked against the stored other.
func (s *BookingService) Update(ctx context.Context, actor *auth.Principal, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	if err := s.guard.ValidatePatch(patch); err != nil {
		return nil, err
	}
	if patch.CheckinDate != nil && patch.CheckoutDate != nil {
		if err := checkDates(*patch.CheckinDate, *patch.CheckoutDate); err != nil {
			return nil, err
		}
	}
	if patch.UserID != nil {
		if err := s.guard.RequireUser(ctx, *patch.UserID); err != nil {
			return nil, err
		}
	}
	if patch.PropertyID != nil {
		if err := s.guard.RequireProperty(ctx, *patch.PropertyID); err != nil {
			return nil, err
		}
	}
	if (patch.CheckinDate == nil) != (patch.CheckoutDate == nil) {
		current, err := s.bookings.GetByID(ctx, id)
		if err != nil {
			return nil, storeError(err, entityBooking)
		}
		checkin, checkout := current.CheckinDate, current.CheckoutDate
		if patch.CheckinDate != nil {
			checkin = *patch.CheckinDate
		}
		if patch.CheckoutDate != nil {
			checkout = *patch.CheckoutDate
		}
		if err := checkDates(checkin, checkout); err != nil {
			return nil, err
		}
	}

	booking, err := s.bookings.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, entityBooking)
	}
	s.pub.emit(ctx, events.ResourceBooking, events.ActionUpdated, id, actor, bookingPayload(booking))
	return booking, nil
}

// Delete removes a booking.
func (s *BookingService) Delete(ctx context.Context, actor *auth.Principal, id string) (string, error) {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return "", storeError(err, entityBooking)
	}
	s.pub.emit(ctx, events.ResourceBooking, events.ActionDeleted, id, actor, nil)
	return deletedMessage(entityBooking, id), nil
}

func checkDates(checkin, checkout time.Time) error {
	if !checkout.After(checkin) {
		return apperrors.NewValidationError("checkoutDate must be after checkinDate",
			map[string]any{"invalid": map[string]string{"checkoutDate": "gtfield=checkinDate"}})
	}
	return nil
}
