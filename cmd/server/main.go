package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imsujinpark/project-cutepon-sub000/internal/adapters/handler/http"
	"github.com/imsujinpark/project-cutepon-sub000/internal/adapters/oauth/google"
	"github.com/imsujinpark/project-cutepon-sub000/internal/adapters/repository/postgres"
	"github.com/imsujinpark/project-cutepon-sub000/internal/adapters/session"
	"github.com/imsujinpark/project-cutepon-sub000/internal/config"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/services"
	"github.com/imsujinpark/project-cutepon-sub000/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	couponRepo := postgres.NewCouponRepository(db)
	sessions := session.NewMemoryStore(cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	m := metrics.New(prometheus.DefaultRegisterer)

	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userSvc, sessions, google.NewVerifier(), m, cfg.GoogleClientID)
	couponSvc := services.NewCouponService(couponRepo, userRepo, m)

	handler := http.NewHandler(
		http.NewAuthHandler(authSvc),
		http.NewCouponHandler(couponSvc),
		http.NewUserHandler(userSvc),
		authSvc,
	)
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
