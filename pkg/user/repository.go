package user

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

// Patch carries the mutable columns of a user row. Nil fields are left
// unchanged. Email must already be normalized; PasswordHash must already
// be hashed.
type Patch struct {
	Email        *string
	PasswordHash *string
	FullName     *string
	IsActive     *bool
	IsSuperuser  *bool
}

// Repository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc. The storage layer is
// the authoritative guard for email uniqueness: Create and Update return
// ErrEmailTaken when the unique constraint fires, which makes concurrent
// duplicate registrations safe without in-process locking.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Update(ctx context.Context, id int64, p Patch) (User, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
	Delete(ctx context.Context, id int64) error
}
