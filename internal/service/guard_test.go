package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/rental-service/internal/config"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

func TestStoreError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		entity  string
		status  int
		code    string
		message string
	}{
		{name: "missing row", err: repository.ErrNotFound, entity: entityBooking, status: http.StatusNotFound, code: apperrors.CodeNotFound, message: "Booking not found"},
		{name: "foreign key", err: &repository.ReferenceError{Entity: repository.EntityUser}, entity: entityBooking, status: http.StatusNotFound, code: apperrors.CodeNotFound, message: "User not found"},
		{name: "wrapped foreign key", err: fmt.Errorf("insert: %w", &repository.ReferenceError{Entity: repository.EntityProperty}), entity: entityReview, status: http.StatusNotFound, code: apperrors.CodeNotFound, message: "Property not found"},
		{name: "duplicate amenity", err: repository.ErrDuplicate, entity: repository.EntityAmenity, status: http.StatusBadRequest, code: apperrors.CodeDuplicate, message: "Amenity with this name already exists"},
		{name: "duplicate other", err: repository.ErrDuplicate, entity: entityReview, status: http.StatusBadRequest, code: apperrors.CodeDuplicate, message: "Review already exists"},
		{name: "driver failure", err: errors.New("connection reset"), entity: entityBooking, status: http.StatusInternalServerError, code: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			de := apperrors.ToDomainError(storeError(tt.err, tt.entity))
			require.NotNil(t, de)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.Equal(t, tt.code, de.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, de.Message)
			}
		})
	}

	assert.NoError(t, storeError(nil, entityBooking))
}

// racingBookings behaves like the store but fails every write, as when a
// referenced row disappears between the guard's check and the mutation.
type racingBookings struct {
	repository.BookingRepository
	err error
}

func (r racingBookings) Create(context.Context, *domain.Booking) error {
	return r.err
}

func (r racingBookings) Update(context.Context, string, domain.BookingPatch) (*domain.Booking, error) {
	return nil, r.err
}

func TestBookingReferenceVanishesAfterGuard(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	user := h.createUser(t, "guest")
	property := h.createProperty(t)

	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "user deleted", err: &repository.ReferenceError{Entity: repository.EntityUser}, message: "User not found"},
		{name: "property deleted", err: &repository.ReferenceError{Entity: repository.EntityProperty}, message: "Property not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := h.store.Repositories()
			repos.Bookings = racingBookings{BookingRepository: repos.Bookings, err: tt.err}
			rec := &recordingDispatcher{}
			svc := New(config.Config{Auth: config.AuthConfig{BcryptCost: 4}}, Dependencies{
				Repos:      repos,
				Tokens:     h.svc.Auth.TokenManager(),
				Dispatcher: rec,
			})

			_, err := svc.Bookings.Create(ctx, nil, domain.BookingInput{
				UserID:         user.ID,
				PropertyID:     property.ID,
				CheckinDate:    h.now.AddDate(0, 1, 0),
				CheckoutDate:   h.now.AddDate(0, 1, 2),
				NumberOfGuests: ptr(2),
				TotalPrice:     ptr(300.0),
			})
			de := assertDomainError(t, err, http.StatusNotFound, tt.message)
			assert.Equal(t, apperrors.CodeNotFound, de.Code)

			_, err = svc.Bookings.Update(ctx, nil, "b-1", domain.BookingPatch{UserID: ptr(user.ID)})
			assertDomainError(t, err, http.StatusNotFound, tt.message)

			assert.Empty(t, rec.types())
		})
	}
}

func TestPasswordByteLimit(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	user := h.createUser(t, "jdoe")

	// 40 runes, 80 bytes.
	long := strings.Repeat("é", 40)

	_, err := h.svc.Users.Create(ctx, nil, domain.UserInput{Username: "ana", Password: long, Name: "Ana", Email: "ana@example.com"})
	de := assertDomainError(t, err, http.StatusBadRequest, "")
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	assert.Equal(t, map[string]string{"password": "bcryptlen"}, de.Details["invalid"])

	_, err = h.svc.Hosts.Create(ctx, nil, domain.HostInput{Username: "hana", Password: long, Name: "Hana", Email: "hana@example.com"})
	assertDomainError(t, err, http.StatusBadRequest, "")

	_, err = h.svc.Users.Update(ctx, nil, user.ID, domain.UserPatch{Password: ptr(long)})
	de = assertDomainError(t, err, http.StatusBadRequest, "")
	assert.Equal(t, apperrors.CodeValidation, de.Code)

	_, err = hashPassword(strings.Repeat("a", 73), 4)
	de = assertDomainError(t, err, http.StatusBadRequest, "")
	assert.Equal(t, apperrors.CodeValidation, de.Code)

	_, err = h.svc.Users.Create(ctx, nil, domain.UserInput{Username: "bo", Password: strings.Repeat("é", 36), Name: "Bo", Email: "bo@example.com"})
	assert.NoError(t, err)
}
