package ports

import (
	"context"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
)

// UserRepository lookups return (nil, nil) when no row matches; callers
// decide whether a missing user is fatal in their context.
type UserRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// RegisterOrFetch is idempotent: it returns the existing row for an
	// already-registered external identity, otherwise inserts one.
	RegisterOrFetch(ctx context.Context, externalID, publicID string) (*domain.User, error)
}
