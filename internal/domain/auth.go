package domain

import "time"

// Identity is the verified subject of a login.
type Identity struct {
	ID       string
	Username string
}

// Token represents issued access token metadata.
type Token struct {
	Value     string
	SubjectID string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
