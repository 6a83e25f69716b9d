package ports

import (
	"context"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
)

// SessionStore is the sole authority over credential pairs. Implementations
// must guarantee at most one live pair per user: issuing a new pair
// invalidates the previous one wholesale.
type SessionStore interface {
	Issue(ctx context.Context, userID int64) (domain.Credentials, error)
	// Validate resolves an access token to its user. Returns
	// domain.ErrTokenInvalid for an unknown token and domain.ErrTokenExpired
	// for a known token past its expiry.
	Validate(ctx context.Context, token string) (int64, error)
	// Refresh rotates the pair identified by the refresh token. The old pair
	// is invalidated atomically with the new issuance; there is no partial
	// state for a losing concurrent refresh to observe.
	Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error)
	// Drop discards the pair identified by the refresh token, if any.
	Drop(ctx context.Context, refreshToken string)
}
