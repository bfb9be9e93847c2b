package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/config"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/repository/memory"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

const testSecret = "service-test-secret-long-enough"

func ptr[T any](v T) *T { return &v }

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordingDispatcher) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type harness struct {
	svc    *Services
	store  *memory.Store
	events *recordingDispatcher
	now    time.Time
	seq    int
}

func (h *harness) next() int {
	h.seq++
	return h.seq
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	rec := &recordingDispatcher{}
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: 4}}
	svc := New(cfg, Dependencies{
		Repos:      store.Repositories(),
		Tokens:     auth.NewTokenManager(testSecret, auth.DefaultTokenTTL, auth.WithClock(func() time.Time { return now })),
		Dispatcher: rec,
	})
	return &harness{svc: svc, store: store, events: rec, now: now}
}

func (h *harness) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := h.svc.Users.Create(context.Background(), nil, domain.UserInput{
		Username: username,
		Password: "secret",
		Name:     "Test " + username,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return user
}

func (h *harness) createProperty(t *testing.T) *domain.Property {
	t.Helper()
	ctx := context.Background()
	host, err := h.svc.Hosts.Create(ctx, nil, domain.HostInput{
		Username: fmt.Sprintf("host%d", h.next()),
		Password: "hostpass",
		Name:     "Hanna",
		Email:    fmt.Sprintf("host%d@example.com", h.seq),
	})
	require.NoError(t, err)
	property, err := h.svc.Properties.Create(ctx, nil, domain.PropertyInput{
		HostID:        host.ID,
		Title:         "Cabin",
		Description:   "Quiet cabin",
		Location:      "Tahoe",
		PricePerNight: ptr(150.0),
		BedroomCount:  ptr(2),
		BathRoomCount: ptr(1),
		MaxGuestCount: ptr(4),
	})
	require.NoError(t, err)
	return property
}

func assertDomainError(t *testing.T, err error, status int, message string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, status, de.HTTPStatus)
	if message != "" {
		assert.Equal(t, message, de.Message)
	}
	return de
}

func TestLogin(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	user := h.createUser(t, "jdoe")
	ctx := context.Background()

	token, err := h.svc.Auth.Login(ctx, "jdoe", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, token.SubjectID)
	assert.Equal(t, h.now.Add(7*time.Hour), token.ExpiresAt)
	assert.Equal(t, h.now, token.IssuedAt)

	claims, err := h.svc.Auth.TokenManager().Validate(token.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)

	tests := []struct {
		name     string
		username string
		password string
		status   int
		message  string
	}{
		{name: "wrong password", username: "jdoe", password: "wrong", status: http.StatusUnauthorized, message: "Invalid credentials"},
		{name: "unknown user", username: "ghost", password: "secret", status: http.StatusUnauthorized, message: "Invalid credentials"},
		{name: "missing password", username: "jdoe", status: http.StatusBadRequest, message: "username and password are required"},
		{name: "missing username", password: "secret", status: http.StatusBadRequest, message: "username and password are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Auth.Login(ctx, tt.username, tt.password)
			assertDomainError(t, err, tt.status, tt.message)
		})
	}
}

func TestVerifyCredentialsIsReadOnly(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	user := h.createUser(t, "jdoe")
	before, err := h.store.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)

	identity, err := h.svc.Auth.VerifyCredentials(context.Background(), "jdoe", "secret")
	require.NoError(t, err)
	assert.Equal(t, &domain.Identity{ID: user.ID, Username: "jdoe"}, identity)

	after, err := h.store.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Users.Create(ctx, nil, domain.UserInput{Username: "jdoe"})
	de := assertDomainError(t, err, http.StatusBadRequest, "")
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	assert.ElementsMatch(t, []string{"password", "name", "email"}, de.Details["missing"])

	_, err = h.svc.Users.Create(ctx, nil, domain.UserInput{Username: "jdoe", Password: "secret", Name: "J", Email: "not-an-email"})
	de = assertDomainError(t, err, http.StatusBadRequest, "")
	assert.Equal(t, map[string]string{"email": "email"}, de.Details["invalid"])

	h.createUser(t, "jdoe")
	_, err = h.svc.Users.Create(ctx, nil, domain.UserInput{Username: "jdoe", Password: "secret", Name: "J", Email: "other@example.com"})
	de = assertDomainError(t, err, http.StatusBadRequest, "User with this username or email already exists")
	assert.Equal(t, apperrors.CodeDuplicate, de.Code)
}

func TestUserSelfScope(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	owner := h.createUser(t, "owner")
	other := h.createUser(t, "other")
	actor := &auth.Principal{UserID: other.ID, Username: "other"}

	_, err := h.svc.Users.Update(ctx, actor, owner.ID, domain.UserPatch{Name: ptr("Hijacked")})
	assertDomainError(t, err, http.StatusForbidden, "You can only update your own account")

	_, err = h.svc.Users.Delete(ctx, actor, owner.ID)
	assertDomainError(t, err, http.StatusForbidden, "You can only delete your own account")

	stored, err := h.store.Users().GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test owner", stored.Name)

	// validation runs before the ownership check
	_, err = h.svc.Users.Update(ctx, actor, owner.ID, domain.UserPatch{})
	assertDomainError(t, err, http.StatusBadRequest, "no fields provided to update")
}

func TestUserUpdateAppliesPresentZeroValues(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	user, err := h.svc.Users.Create(ctx, nil, domain.UserInput{
		Username: "jdoe", Password: "secret", Name: "John", Email: "jdoe@example.com", PhoneNumber: "555",
	})
	require.NoError(t, err)
	self := &auth.Principal{UserID: user.ID}

	updated, err := h.svc.Users.Update(ctx, self, user.ID, domain.UserPatch{PhoneNumber: ptr(""), Password: ptr("newsecret")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.PhoneNumber)
	assert.Equal(t, "John", updated.Name)

	_, err = h.svc.Auth.Login(ctx, "jdoe", "newsecret")
	assert.NoError(t, err)
}

func TestDeleteIsNotRepeatable(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	user := h.createUser(t, "jdoe")
	self := &auth.Principal{UserID: user.ID}

	msg, err := h.svc.Users.Delete(ctx, self, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "User with id "+user.ID+" was deleted", msg)

	_, err = h.svc.Users.Delete(ctx, self, user.ID)
	assertDomainError(t, err, http.StatusNotFound, "User not found")
}

func TestBookingReferences(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	user := h.createUser(t, "guest")
	property := h.createProperty(t)

	input := domain.BookingInput{
		UserID:         "missing-user",
		PropertyID:     property.ID,
		CheckinDate:    h.now.AddDate(0, 1, 0),
		CheckoutDate:   h.now.AddDate(0, 1, 3),
		NumberOfGuests: ptr(2),
		TotalPrice:     ptr(450.0),
	}
	_, err := h.svc.Bookings.Create(ctx, nil, input)
	assertDomainError(t, err, http.StatusNotFound, "User not found")

	input.UserID = user.ID
	input.PropertyID = "missing-property"
	_, err = h.svc.Bookings.Create(ctx, nil, input)
	assertDomainError(t, err, http.StatusNotFound, "Property not found")

	all, err := h.svc.Bookings.List(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	input.PropertyID = property.ID
	booking, err := h.svc.Bookings.Create(ctx, nil, input)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.BookingStatus)

	_, err = h.svc.Bookings.Update(ctx, nil, booking.ID, domain.BookingPatch{UserID: ptr("missing-user")})
	assertDomainError(t, err, http.StatusNotFound, "User not found")

	_, err = h.svc.Bookings.Update(ctx, nil, booking.ID, domain.BookingPatch{CheckoutDate: ptr(h.now)})
	assertDomainError(t, err, http.StatusBadRequest, "checkoutDate must be after checkinDate")

	_, err = h.svc.Bookings.Update(ctx, nil, "missing-booking", domain.BookingPatch{NumberOfGuests: ptr(3)})
	assertDomainError(t, err, http.StatusNotFound, "Booking not found")

	updated, err := h.svc.Bookings.Update(ctx, nil, booking.ID, domain.BookingPatch{BookingStatus: ptr(domain.BookingStatusConfirmed)})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.BookingStatus)
	assert.Equal(t, 2, updated.NumberOfGuests)
}

func TestBookingRejectsInvertedDates(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	_, err := h.svc.Bookings.Create(context.Background(), nil, domain.BookingInput{
		UserID:         "u",
		PropertyID:     "p",
		CheckinDate:    h.now.AddDate(0, 0, 5),
		CheckoutDate:   h.now,
		NumberOfGuests: ptr(1),
		TotalPrice:     ptr(10.0),
	})
	de := assertDomainError(t, err, http.StatusBadRequest, "")
	assert.Contains(t, de.Details["invalid"], "checkoutDate")
}

func TestPropertyAmenities(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	property := h.createProperty(t)

	wifi, err := h.svc.Amenities.Create(ctx, nil, domain.AmenityInput{Name: "Wifi"})
	require.NoError(t, err)

	_, err = h.svc.Properties.Update(ctx, nil, property.ID, domain.PropertyPatch{AmenityIDs: &[]string{wifi.ID, "nope"}})
	de := assertDomainError(t, err, http.StatusNotFound, "Amenity not found")
	assert.Equal(t, "nope", de.Details["amenityId"])

	updated, err := h.svc.Properties.Update(ctx, nil, property.ID, domain.PropertyPatch{AmenityIDs: &[]string{wifi.ID}, Rating: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, []string{wifi.ID}, updated.AmenityIDs)
	assert.Equal(t, 0, updated.Rating)

	_, err = h.svc.Properties.Update(ctx, nil, property.ID, domain.PropertyPatch{PricePerNight: ptr(0.0)})
	assertDomainError(t, err, http.StatusBadRequest, "")

	_, err = h.svc.Properties.Update(ctx, nil, property.ID, domain.PropertyPatch{HostID: ptr("ghost")})
	assertDomainError(t, err, http.StatusNotFound, "Host not found")
}

func TestReviewRules(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	user := h.createUser(t, "critic")
	property := h.createProperty(t)

	_, err := h.svc.Reviews.Create(ctx, nil, domain.ReviewInput{UserID: user.ID, PropertyID: property.ID, Rating: ptr(6)})
	assertDomainError(t, err, http.StatusBadRequest, "")

	review, err := h.svc.Reviews.Create(ctx, nil, domain.ReviewInput{UserID: user.ID, PropertyID: property.ID, Rating: ptr(4), Comment: "nice"})
	require.NoError(t, err)

	_, err = h.svc.Properties.Delete(ctx, nil, property.ID)
	require.NoError(t, err)

	_, err = h.svc.Reviews.Get(ctx, review.ID)
	assertDomainError(t, err, http.StatusNotFound, "Review not found")
}

func TestMutationsEmitEvents(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	user := h.createUser(t, "jdoe")
	self := &auth.Principal{UserID: user.ID}

	_, err := h.svc.Users.Update(ctx, self, user.ID, domain.UserPatch{Name: ptr("Jane")})
	require.NoError(t, err)
	_, err = h.svc.Users.Update(ctx, &auth.Principal{UserID: "someone"}, user.ID, domain.UserPatch{Name: ptr("X")})
	require.Error(t, err)
	_, err = h.svc.Users.Delete(ctx, self, user.ID)
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{events.EventUserCreated, events.EventUserUpdated, events.EventUserDeleted}, h.events.types())
	assert.Equal(t, user.ID, h.events.events[2].ActorID)
}
