// Package memory holds in-memory repository implementations. They keep unit
// tests free of a database while honoring the same contracts as the postgres
// adapters, including the insert-only users table.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

type UserRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]domain.User
	byExternal map[string]int64
	byPublic   map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		nextID:     1,
		byID:       make(map[int64]domain.User),
		byExternal: make(map[string]int64),
		byPublic:   make(map[string]int64),
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byExternal[externalID]; ok {
		user := r.byID[id]
		return &user, nil
	}
	return nil, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.byID[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (r *UserRepository) GetByPublicID(_ context.Context, publicID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byPublic[publicID]; ok {
		user := r.byID[id]
		return &user, nil
	}
	return nil, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byExternal[user.ExternalID]; ok {
		return fmt.Errorf("user already registered: external id %q", user.ExternalID)
	}
	if _, ok := r.byPublic[user.PublicID]; ok {
		return fmt.Errorf("user already registered: public id %q", user.PublicID)
	}
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.byID[user.ID] = *user
	r.byExternal[user.ExternalID] = user.ID
	r.byPublic[user.PublicID] = user.ID
	return nil
}
