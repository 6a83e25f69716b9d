package ports

import (
	"context"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
)

type TokenPayload struct {
	Subject string
	Email   string
	Name    string
}

// TokenVerifier checks a credential issued by the external identity
// provider and extracts the verified identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}

type AuthService interface {
	LoginWithGoogle(ctx context.Context, googleToken string) (domain.Credentials, error)
	Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error)
	Logout(ctx context.Context, refreshToken string) error
	// Authenticate resolves a bearer token into the caller's user id before
	// any lifecycle operation runs.
	Authenticate(ctx context.Context, token string) (int64, error)
}
