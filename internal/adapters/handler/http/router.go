package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

func NewHandler(authHandler *AuthHandler, couponHandler *CouponHandler, userHandler *UserHandler, auth ports.AuthService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Post("/oauth/callback", authHandler.GoogleCallback)
	r.Post("/auth/refresh", authHandler.Refresh)
	r.Post("/auth/logout", authHandler.Logout)

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireAuth(auth))

		r.Get("/me", userHandler.GetMe)

		r.Route("/coupons", func(r chi.Router) {
			r.Post("/", couponHandler.Send)
			r.Get("/received", couponHandler.ListReceived)
			r.Get("/sent", couponHandler.ListSent)
			r.Post("/{id}/redeem", couponHandler.Redeem)
			r.Delete("/{id}", couponHandler.Delete)
		})
	})

	return r
}
