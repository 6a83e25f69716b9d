package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
)

// maxTokenAttempts bounds the retry loop against an astronomically unlikely
// random-token collision. Exhausting it is a programmer error, not a
// user-facing condition.
const maxTokenAttempts = 10

const tokenBytes = 32 // 256 bits of entropy

// MemoryStore is the in-memory authority for credential pairs. One mutex
// guards all three maps so issue and refresh are atomic with respect to a
// single user's records: of two concurrent refreshes for the same user, the
// loser finds its refresh token already gone.
type MemoryStore struct {
	mu         sync.Mutex
	sessions   map[string]domain.Session
	refresh    map[string]domain.RefreshSession
	byUser     map[int64]domain.Credentials
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewMemoryStore returns a ready-to-use store; there is no partially
// initialized state.
func NewMemoryStore(accessTTL, refreshTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:   make(map[string]domain.Session),
		refresh:    make(map[string]domain.RefreshSession),
		byUser:     make(map[int64]domain.Credentials),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *MemoryStore) Issue(_ context.Context, userID int64) (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(userID), nil
}

// Validate resolves an access token. Expired entries stay in the map until
// their pair is rotated or dropped.
// TODO: sweep expired sessions here instead of waiting for rotation.
func (s *MemoryStore) Validate(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return 0, domain.ErrTokenInvalid
	}
	if s.now().After(sess.ExpiresAt) {
		return 0, domain.ErrTokenExpired
	}
	return sess.UserID, nil
}

func (s *MemoryStore) Refresh(_ context.Context, refreshToken string) (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.refresh[refreshToken]
	if !ok {
		return domain.Credentials{}, domain.ErrTokenInvalid
	}
	if s.now().After(rs.ExpiresAt) {
		return domain.Credentials{}, domain.ErrTokenExpired
	}

	// Every issued refresh token is paired with a per-user record by
	// construction; a live token without one is an invariant violation.
	pair, ok := s.byUser[rs.UserID]
	if !ok || pair.RefreshToken != refreshToken {
		panic(fmt.Sprintf("session: refresh token for user %d has no matching pair record", rs.UserID))
	}

	return s.issueLocked(rs.UserID), nil
}

func (s *MemoryStore) Drop(_ context.Context, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.refresh[refreshToken]
	if !ok {
		return
	}
	s.invalidateLocked(rs.UserID)
}

// issueLocked replaces the user's pair wholesale. Callers hold s.mu.
func (s *MemoryStore) issueLocked(userID int64) domain.Credentials {
	s.invalidateLocked(userID)

	now := s.now()
	token := s.newTokenLocked()
	refreshToken := s.newTokenLocked()

	s.sessions[token] = domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.accessTTL),
	}
	s.refresh[refreshToken] = domain.RefreshSession{
		RefreshToken: refreshToken,
		UserID:       userID,
		ExpiresAt:    now.Add(s.refreshTTL),
	}

	creds := domain.Credentials{Token: token, RefreshToken: refreshToken}
	s.byUser[userID] = creds
	return creds
}

func (s *MemoryStore) invalidateLocked(userID int64) {
	if prev, ok := s.byUser[userID]; ok {
		delete(s.sessions, prev.Token)
		delete(s.refresh, prev.RefreshToken)
		delete(s.byUser, userID)
	}
}

// newTokenLocked generates a globally unique opaque token, retrying on the
// off chance the random bytes collide with a live token.
func (s *MemoryStore) newTokenLocked() string {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token := generateToken()
		if _, taken := s.sessions[token]; taken {
			continue
		}
		if _, taken := s.refresh[token]; taken {
			continue
		}
		return token
	}
	panic(fmt.Sprintf("session: no unique token after %d attempts", maxTokenAttempts))
}

func generateToken() string {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session: failed to read random bytes: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
