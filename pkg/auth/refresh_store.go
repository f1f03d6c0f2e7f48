package auth

import (
	"context"
	"time"
)

// RefreshStore tracks issued refresh tokens by their jti so they can be
// rotated: a token id is saved when the token is minted and consumed exactly
// once when it is exchanged for a new pair. A second exchange of the same
// token fails.
type RefreshStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	// Consume removes jti and reports whether it was present.
	Consume(ctx context.Context, jti string) (bool, error)
}

// NoRevocation is the RefreshStore used when no backing store is configured:
// refresh tokens stay valid until natural expiry and may be reused, matching
// the pure-expiry token lifecycle (Issued -> Valid -> Expired).
type NoRevocation struct{}

func (NoRevocation) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	return nil
}

func (NoRevocation) Consume(ctx context.Context, jti string) (bool, error) {
	return true, nil
}
