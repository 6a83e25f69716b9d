package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

type CouponHandler struct {
	service ports.CouponService
}

func NewCouponHandler(service ports.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

type sendCouponRequest struct {
	Recipient   string     `json:"recipient"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func (h *CouponHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, domain.ErrAuthorizationMissing)
		return
	}

	var req sendCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: "invalid request body"})
		return
	}

	input := ports.SendCouponInput{
		RecipientPublicID: req.Recipient,
		Title:             req.Title,
		Description:       req.Description,
	}
	if req.ExpiresAt != nil {
		input.ExpiresAt = *req.ExpiresAt
	}

	coupon, err := h.service.Send(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, coupon)
}

func (h *CouponHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, domain.ErrAuthorizationMissing)
		return
	}

	couponID, err := couponIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	coupon, err := h.service.Redeem(r.Context(), userID, couponID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, coupon)
}

func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, domain.ErrAuthorizationMissing)
		return
	}

	couponID, err := couponIDFrom(r)
	if err != nil {
		respondError(w, err)
		return
	}

	coupon, err := h.service.Delete(r.Context(), userID, couponID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, coupon)
}

func (h *CouponHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListReceived)
}

func (h *CouponHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListSent)
}

func (h *CouponHandler) list(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, userID int64) ([]*domain.Coupon, error)) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, domain.ErrAuthorizationMissing)
		return
	}

	coupons, err := fetch(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if coupons == nil {
		coupons = []*domain.Coupon{}
	}

	respondJSON(w, http.StatusOK, coupons)
}

func couponIDFrom(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, domain.ErrCouponIDMissing
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, domain.ErrCouponIDMissing
	}
	return id, nil
}
