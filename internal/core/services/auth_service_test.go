package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsujinpark/project-cutepon-sub000/internal/adapters/repository/memory"
	"github.com/imsujinpark/project-cutepon-sub000/internal/adapters/session"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
	"github.com/imsujinpark/project-cutepon-sub000/internal/metrics"
)

type stubVerifier struct {
	payload ports.TokenPayload
}

func (v *stubVerifier) Verify(_ context.Context, token string, _ string) (*ports.TokenPayload, error) {
	if token != "valid_token" {
		return nil, assert.AnError
	}
	p := v.payload
	return &p, nil
}

func newAuthFixture() (ports.AuthService, *memory.UserRepository) {
	users := memory.NewUserRepository()
	sessions := session.NewMemoryStore(time.Hour, 14*24*time.Hour)
	verifier := &stubVerifier{payload: ports.TokenPayload{
		Subject: "google-sub-1",
		Email:   "user@example.com",
		Name:    "User",
	}}
	m := metrics.New(prometheus.NewRegistry())
	return NewAuthService(NewUserService(users), sessions, verifier, m, "client-id"), users
}

func TestLoginRegistersUserOnce(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	creds, err := svc.LoginWithGoogle(ctx, "valid_token")
	require.NoError(t, err)

	user, err := users.GetByExternalID(ctx, "google-sub-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user@example.com", user.PublicID)

	userID, err := svc.Authenticate(ctx, creds.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// second login resolves to the same row
	again, err := svc.LoginWithGoogle(ctx, "valid_token")
	require.NoError(t, err)
	userID, err = svc.Authenticate(ctx, again.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginRejectsBadCredential(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.LoginWithGoogle(context.Background(), "garbage")
	assert.ErrorContains(t, err, "invalid google token")
}

func TestRefreshRotates(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	old, err := svc.LoginWithGoogle(ctx, "valid_token")
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, old.RefreshToken)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, old.Token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	_, err = svc.Refresh(ctx, old.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.Authenticate(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestLogoutInvalidatesPair(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	creds, err := svc.LoginWithGoogle(ctx, "valid_token")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, creds.RefreshToken))

	_, err = svc.Authenticate(ctx, creds.Token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
