package domain

import "time"

// Host owns properties listed on the marketplace.
type Host struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	ProfilePicture string    `json:"profilePicture"`
	AboutMe        string    `json:"aboutMe"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HostInput is the payload for creating a host.
type HostInput struct {
	Username       string `json:"username" validate:"required,max=64"`
	Password       string `json:"password" validate:"required,min=6,bcryptlen"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,url"`
	AboutMe        string `json:"aboutMe"`
}

// HostPatch carries the explicitly supplied fields of a host update.
type HostPatch struct {
	Username       *string `json:"username" validate:"omitempty,min=1,max=64"`
	Password       *string `json:"password" validate:"omitempty,min=6,bcryptlen"`
	Name           *string `json:"name" validate:"omitempty,min=1"`
	Email          *string `json:"email" validate:"omitempty,email"`
	PhoneNumber    *string `json:"phoneNumber"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,url"`
	AboutMe        *string `json:"aboutMe"`
}

// IsEmpty reports whether no field was supplied.
func (p HostPatch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Name == nil && p.Email == nil &&
		p.PhoneNumber == nil && p.ProfilePicture == nil && p.AboutMe == nil
}

// HostFilter narrows host listings.
type HostFilter struct {
	Name string
}
