package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/repository"
)

type bookingRow = domain.Booking

type bookingRepo struct {
	s *Store
}

func (r *bookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if r.s.bookings.has(booking.ID) {
		return repository.ErrDuplicate
	}
	if err := r.s.requireUser(booking.UserID); err != nil {
		return err
	}
	if err := r.s.requireProperty(booking.PropertyID); err != nil {
		return err
	}
	now := r.s.timestamp()
	booking.CreatedAt, booking.UpdatedAt = now, now
	r.s.bookings.put(booking.ID, *booking)
	return nil
}

func (r *bookingRepo) Update(_ context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.UserID != nil {
		if err := r.s.requireUser(*patch.UserID); err != nil {
			return nil, err
		}
		booking.UserID = *patch.UserID
	}
	if patch.PropertyID != nil {
		if err := r.s.requireProperty(*patch.PropertyID); err != nil {
			return nil, err
		}
		booking.PropertyID = *patch.PropertyID
	}
	applyValue(&booking.CheckinDate, patch.CheckinDate)
	applyValue(&booking.CheckoutDate, patch.CheckoutDate)
	applyValue(&booking.NumberOfGuests, patch.NumberOfGuests)
	applyValue(&booking.TotalPrice, patch.TotalPrice)
	applyValue(&booking.BookingStatus, patch.BookingStatus)
	booking.UpdatedAt = r.s.timestamp()
	r.s.bookings.put(id, booking)
	return &booking, nil
}

func (r *bookingRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.bookings.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	booking, ok := r.s.bookings.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &booking, nil
}

func (r *bookingRepo) List(_ context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Booking{}
	r.s.bookings.each(func(_ string, b bookingRow) {
		if filter.UserID != "" && b.UserID != filter.UserID {
			return
		}
		out = append(out, b)
	})
	return out, nil
}
