package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
)

type errorResponse struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
}

// errorKinds maps each expected sentinel to its wire kind and status.
// Anything unmatched is internal: logged server-side, opaque to the client.
var errorKinds = []struct {
	err    error
	kind   string
	status int
}{
	{domain.ErrAuthorizationMissing, "authorization_missing", http.StatusUnauthorized},
	{domain.ErrTokenExpired, "authorization_expired", http.StatusUnauthorized},
	{domain.ErrTokenInvalid, "authorization_invalid", http.StatusUnauthorized},
	{domain.ErrUnknownRecipient, "target_unknown", http.StatusNotFound},
	{domain.ErrUserNotFound, "target_missing", http.StatusNotFound},
	{domain.ErrCouponIDMissing, "coupon_id_missing", http.StatusBadRequest},
	{domain.ErrCouponNotFound, "unknown_coupon", http.StatusNotFound},
	{domain.ErrWrongOwner, "wrong_owner", http.StatusForbidden},
	{domain.ErrCouponExpired, "coupon_expired", http.StatusConflict},
	{domain.ErrCouponNotActive, "coupon_not_active", http.StatusConflict},
	{domain.ErrDeleteNotAuthorized, "delete_not_authorized", http.StatusForbidden},
	{domain.ErrDeleteTerminalUnsupported, "delete_terminal_unsupported", http.StatusConflict},
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	for _, e := range errorKinds {
		if errors.Is(err, e.err) {
			respondJSON(w, e.status, errorResponse{Kind: e.kind, Message: e.err.Error()})
			return
		}
	}
	slog.Error("internal error", "error", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{
		Kind:    "internal",
		Message: domain.ErrInternal.Error(),
	})
}
