// Package memory provides in-memory implementations of the storage
// interfaces. They back the test suites and keep the same error semantics
// as the SQL/Redis implementations, including the authoritative uniqueness
// check under concurrent access.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mkraev/authd/pkg/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1, byID: make(map[int64]user.User)}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = now
	u.UpdatedAt = now
	r.byID[u.ID] = u
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, p user.Patch) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if p.Email != nil {
		for otherID, other := range r.byID {
			if otherID != id && other.Email == *p.Email {
				return user.User{}, user.ErrEmailTaken
			}
		}
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.IsSuperuser != nil {
		u.IsSuperuser = *p.IsSuperuser
	}
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]user.User, 0, len(r.byID))
	for _, u := range r.byID {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
