package dto

import (
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/staynest/rental-service/internal/domain"
)

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for the login endpoint.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UpdateUserRequest distinguishes absent fields from explicit nulls.
type UpdateUserRequest struct {
	Username       nullable.Nullable[string] `json:"username"`
	Password       nullable.Nullable[string] `json:"password"`
	Name           nullable.Nullable[string] `json:"name"`
	Email          nullable.Nullable[string] `json:"email"`
	PhoneNumber    nullable.Nullable[string] `json:"phoneNumber"`
	ProfilePicture nullable.Nullable[string] `json:"profilePicture"`
}

// ToPatch converts the request, rejecting explicit nulls.
func (r UpdateUserRequest) ToPatch() (domain.UserPatch, error) {
	var f presence
	p := domain.UserPatch{
		Username:       field(&f, "username", r.Username),
		Password:       field(&f, "password", r.Password),
		Name:           field(&f, "name", r.Name),
		Email:          field(&f, "email", r.Email),
		PhoneNumber:    field(&f, "phoneNumber", r.PhoneNumber),
		ProfilePicture: field(&f, "profilePicture", r.ProfilePicture),
	}
	return p, f.err()
}

// DeleteResponse is returned by every DELETE endpoint.
type DeleteResponse struct {
	Message string `json:"message"`
}
