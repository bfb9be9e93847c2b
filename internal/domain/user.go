package domain

import "time"

// User is a guest account. It doubles as the login Identity.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserInput is the payload for creating a user.
type UserInput struct {
	Username       string `json:"username" validate:"required,max=64"`
	Password       string `json:"password" validate:"required,min=6,bcryptlen"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,url"`
}

// UserPatch carries the explicitly supplied fields of a user update.
type UserPatch struct {
	Username       *string `json:"username" validate:"omitempty,min=1,max=64"`
	Password       *string `json:"password" validate:"omitempty,min=6,bcryptlen"`
	Name           *string `json:"name" validate:"omitempty,min=1"`
	Email          *string `json:"email" validate:"omitempty,email"`
	PhoneNumber    *string `json:"phoneNumber"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,url"`
}

// IsEmpty reports whether no field was supplied.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Name == nil &&
		p.Email == nil && p.PhoneNumber == nil && p.ProfilePicture == nil
}

// UserFilter narrows user listings. Empty fields match everything.
type UserFilter struct {
	Username string
	Email    string
}
