package dto

import (
	"github.com/oapi-codegen/nullable"

	"github.com/staynest/rental-service/internal/domain"
)

// UpdateHostRequest payload for PUT /hosts/:id.
type UpdateHostRequest struct {
	Username       nullable.Nullable[string] `json:"username"`
	Password       nullable.Nullable[string] `json:"password"`
	Name           nullable.Nullable[string] `json:"name"`
	Email          nullable.Nullable[string] `json:"email"`
	PhoneNumber    nullable.Nullable[string] `json:"phoneNumber"`
	ProfilePicture nullable.Nullable[string] `json:"profilePicture"`
	AboutMe        nullable.Nullable[string] `json:"aboutMe"`
}

func (r UpdateHostRequest) ToPatch() (domain.HostPatch, error) {
	var f presence
	p := domain.HostPatch{
		Username:       field(&f, "username", r.Username),
		Password:       field(&f, "password", r.Password),
		Name:           field(&f, "name", r.Name),
		Email:          field(&f, "email", r.Email),
		PhoneNumber:    field(&f, "phoneNumber", r.PhoneNumber),
		ProfilePicture: field(&f, "profilePicture", r.ProfilePicture),
		AboutMe:        field(&f, "aboutMe", r.AboutMe),
	}
	return p, f.err()
}
