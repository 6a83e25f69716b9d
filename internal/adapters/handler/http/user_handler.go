package http

import (
	"net/http"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, domain.ErrAuthorizationMissing)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondError(w, domain.ErrUserNotFound)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
