package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/imsujinpark/project-cutepon-sub000/internal/adapters/handler/http"
	repo "github.com/imsujinpark/project-cutepon-sub000/internal/adapters/repository/postgres"
	"github.com/imsujinpark/project-cutepon-sub000/internal/adapters/session"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/services"
	"github.com/imsujinpark/project-cutepon-sub000/internal/metrics"
)

// mockVerifier accepts credentials of the form "sub:<identity>" so tests can
// log in as arbitrary users.
type mockVerifier struct{}

func (mockVerifier) Verify(_ context.Context, token string, _ string) (*ports.TokenPayload, error) {
	if !strings.HasPrefix(token, "sub:") {
		return nil, assert.AnError
	}
	sub := strings.TrimPrefix(token, "sub:")
	return &ports.TokenPayload{Subject: sub, Email: sub + "@example.com"}, nil
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	userRepo := repo.NewUserRepository(db)
	couponRepo := repo.NewCouponRepository(db)
	sessions := session.NewMemoryStore(time.Hour, 14*24*time.Hour)
	m := metrics.New(prometheus.NewRegistry())

	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userSvc, sessions, mockVerifier{}, m, "client-id")
	couponSvc := services.NewCouponService(couponRepo, userRepo, m)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc),
		handler.NewCouponHandler(couponSvc),
		handler.NewUserHandler(userSvc),
		authSvc,
	)
	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
