package user

import (
	"context"
	"strings"

	"github.com/mkraev/authd/pkg/security/password"
)

// CreateInput is the service-level payload for creating a user.
// Password is plaintext and is hashed before it touches the repository.
type CreateInput struct {
	Email       string
	Password    string
	FullName    string
	IsActive    bool
	IsSuperuser bool
}

// UpdateInput carries optional profile mutations. A non-nil Password is
// re-hashed; a non-nil Email is normalized before storage.
type UpdateInput struct {
	Email       *string
	Password    *string
	FullName    *string
	IsActive    *bool
	IsSuperuser *bool
}

// UseCase describes user management behavior (admin CRUD plus self profile
// updates).
type UseCase interface {
	Create(ctx context.Context, in CreateInput) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
	Update(ctx context.Context, id int64, in UpdateInput) (User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo   Repository
	hasher *password.Hasher
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository, hasher *password.Hasher) UseCase {
	return &service{repo: repo, hasher: hasher}
}

// NormalizeEmail lower-cases and trims an email so lookups are
// case-insensitive across the whole service.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Create(ctx context.Context, in CreateInput) (User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}
	return s.repo.Create(ctx, User{
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		IsActive:     in.IsActive,
		IsSuperuser:  in.IsSuperuser,
	})
}

func (s *service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, offset, limit int) ([]User, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (User, error) {
	p := Patch{
		FullName:    in.FullName,
		IsActive:    in.IsActive,
		IsSuperuser: in.IsSuperuser,
	}
	if in.Email != nil {
		normalized := NormalizeEmail(*in.Email)
		p.Email = &normalized
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return User{}, err
		}
		p.PasswordHash = &hash
	}
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
