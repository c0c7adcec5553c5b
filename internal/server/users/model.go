package users

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated subject extracted from an access token.
type Identity struct {
	ID    int64
	Email string
}
