package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

type contextKey string

// UserIDKey carries the authenticated user's id through the request context.
const UserIDKey contextKey = "userID"

// RequireAuth resolves the bearer token into a caller identity before any
// coupon operation runs. Absence, garbage, and expiry each map to their own
// error kind.
func RequireAuth(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, domain.ErrAuthorizationMissing)
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				respondError(w, domain.ErrTokenInvalid)
				return
			}

			userID, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userIDFrom(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	return userID, ok
}
