package user

import "time"

// User is a domain entity representing a registered account.
// PasswordHash is opaque to everything except the password hasher and is
// never exposed through the HTTP layer.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
