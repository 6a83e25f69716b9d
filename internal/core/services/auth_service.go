package services

import (
	"context"
	"fmt"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
	"github.com/imsujinpark/project-cutepon-sub000/internal/metrics"
)

type authService struct {
	users          ports.UserService
	sessions       ports.SessionStore
	verifier       ports.TokenVerifier
	metrics        *metrics.Metrics
	googleClientID string
}

func NewAuthService(users ports.UserService, sessions ports.SessionStore, verifier ports.TokenVerifier, m *metrics.Metrics, googleClientID string) ports.AuthService {
	return &authService{
		users:          users,
		sessions:       sessions,
		verifier:       verifier,
		metrics:        m,
		googleClientID: googleClientID,
	}
}

// LoginWithGoogle completes a login: the verified external identity is
// registered on first sight, then a fresh credential pair is issued,
// invalidating whatever pair the user held before.
func (s *authService) LoginWithGoogle(ctx context.Context, googleToken string) (domain.Credentials, error) {
	payload, err := s.verifier.Verify(ctx, googleToken, s.googleClientID)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("invalid google token: %w", err)
	}

	user, err := s.users.RegisterOrFetch(ctx, payload.Subject, payload.Email)
	if err != nil {
		return domain.Credentials{}, err
	}

	creds, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("failed to issue credentials: %w", err)
	}
	s.metrics.TokensIssued.Inc()
	return creds, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error) {
	creds, err := s.sessions.Refresh(ctx, refreshToken)
	if err != nil {
		return domain.Credentials{}, err
	}
	s.metrics.TokensRefreshed.Inc()
	return creds, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	s.sessions.Drop(ctx, refreshToken)
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (int64, error) {
	return s.sessions.Validate(ctx, token)
}
