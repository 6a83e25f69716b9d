package http

import (
	"encoding/json"
	"net/http"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleCallback finishes the login screen's round trip: the posted
// credential is verified and traded for a token pair.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: "failed to parse form"})
		return
	}

	credential := r.FormValue("credential")
	if credential == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: "missing credential"})
		return
	}

	creds, err := h.authService.LoginWithGoogle(r.Context(), credential)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, creds)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondError(w, domain.ErrTokenInvalid)
		return
	}

	creds, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, creds)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		_ = h.authService.Logout(r.Context(), req.RefreshToken)
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
