package auth

import (
	"context"
	"errors"
	"time"

	"github.com/mkraev/authd/pkg/security/password"
	"github.com/mkraev/authd/pkg/security/token"
	"github.com/mkraev/authd/pkg/user"
)

// Errors the HTTP layer translates into 401/409 responses. Wrong passwords
// and unknown emails collapse into ErrInvalidCredentials on purpose.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("inactive user")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UseCase describes authentication/registration behavior.
type UseCase interface {
	Register(ctx context.Context, email, pass, fullName string) (user.User, error)
	Login(ctx context.Context, email, pass string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type service struct {
	users   user.Repository
	hasher  *password.Hasher
	tokens  *token.Manager
	refresh RefreshStore
}

// NewService returns the default implementation of UseCase.
func NewService(users user.Repository, hasher *password.Hasher, tokens *token.Manager, refresh RefreshStore) UseCase {
	return &service{users: users, hasher: hasher, tokens: tokens, refresh: refresh}
}

// Register creates an active, non-privileged account. The repository's
// unique constraint is the authoritative duplicate guard; the pre-check only
// fails fast on the common case.
func (s *service) Register(ctx context.Context, email, pass, fullName string) (user.User, error) {
	email = user.NormalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return user.User{}, user.ErrEmailTaken
	}
	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return user.User{}, err
	}
	return s.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		IsActive:     true,
	})
}

func (s *service) Login(ctx context.Context, email, pass string) (TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	ok, err := s.hasher.Verify(pass, u.PasswordHash)
	if err != nil {
		// Corrupt stored hash, not a wrong password.
		return TokenPair{}, err
	}
	if !ok {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenPair{}, ErrInactiveUser
	}
	return s.issuePair(ctx, u.ID)
}

// Refresh exchanges a refresh token for a new pair, rotating it: the old
// token's jti is consumed and a replayed token is rejected.
func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return TokenPair{}, ErrInvalidRefresh
	}
	live, err := s.refresh.Consume(ctx, claims.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if !live {
		return TokenPair{}, ErrInvalidRefresh
	}
	id, err := claims.UserID()
	if err != nil {
		return TokenPair{}, ErrInvalidRefresh
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefresh
		}
		return TokenPair{}, err
	}
	if !u.IsActive {
		return TokenPair{}, ErrInactiveUser
	}
	return s.issuePair(ctx, u.ID)
}

func (s *service) issuePair(ctx context.Context, userID int64) (TokenPair, error) {
	access, _, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, claims, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return TokenPair{}, err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.refresh.Save(ctx, claims.ID, userID, ttl); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
