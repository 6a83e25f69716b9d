package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
)

// TestCouponFlow covers the full lifecycle over HTTP against a real
// database: send -> list -> redeem -> duplicate redeem -> delete rules.
func TestCouponFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	aliceSub := fmt.Sprintf("alice-%s", uuid.New())
	bobSub := fmt.Sprintf("bob-%s", uuid.New())
	alice := loginAs(t, app, aliceSub)
	bob := loginAs(t, app, bobSub)

	// Step 1: alice sends bob a coupon
	resp := request(t, app, http.MethodPost, "/api/coupons", alice.Token, map[string]any{
		"recipient":   bobSub + "@example.com",
		"title":       "one free coffee",
		"description": "valid at the office machine",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var coupon domain.Coupon
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&coupon))
	resp.Body.Close()
	assert.Equal(t, domain.CouponActive, coupon.Status)
	assert.Nil(t, coupon.FinishedAt)
	assert.WithinDuration(t, time.Now().Add(domain.DefaultCouponLifetime), coupon.ExpiresAt, time.Minute)

	// Step 2: it appears in bob's received list and alice's sent list
	resp = request(t, app, http.MethodGet, "/api/coupons/received", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var received []domain.Coupon
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&received))
	resp.Body.Close()
	require.Len(t, received, 1)
	assert.Equal(t, coupon.ID, received[0].ID)

	resp = request(t, app, http.MethodGet, "/api/coupons/sent", alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sent []domain.Coupon
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sent))
	resp.Body.Close()
	require.Len(t, sent, 1)

	// Step 3: sending to an unknown address fails
	resp = request(t, app, http.MethodPost, "/api/coupons", alice.Token, map[string]any{
		"recipient": "nobody@example.com",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Step 4: only bob may redeem
	redeemPath := fmt.Sprintf("/api/coupons/%d/redeem", coupon.ID)
	resp = request(t, app, http.MethodPost, redeemPath, alice.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodPost, redeemPath, bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var redeemed domain.Coupon
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&redeemed))
	resp.Body.Close()
	assert.Equal(t, domain.CouponRedeemed, redeemed.Status)
	require.NotNil(t, redeemed.FinishedAt)

	// Step 5: the transition is persisted
	var status string
	err := app.DB.QueryRow("SELECT status FROM coupons WHERE id = $1", coupon.ID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, "redeemed", status)

	// Step 6: redeeming twice fails, and deleting a finished coupon is unsupported
	resp = request(t, app, http.MethodPost, redeemPath, bob.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/api/coupons/%d", coupon.ID), bob.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

// TestLazyExpiration seeds an already-expired active row and checks that a
// list read reconciles it, persists the expiration, and pins finished_at to
// the expiry boundary.
func TestLazyExpiration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	aliceSub := fmt.Sprintf("alice-%s", uuid.New())
	bobSub := fmt.Sprintf("bob-%s", uuid.New())
	loginAs(t, app, aliceSub)
	bob := loginAs(t, app, bobSub)

	var aliceID, bobID int64
	require.NoError(t, app.DB.QueryRow("SELECT id FROM users WHERE external_id = $1", aliceSub).Scan(&aliceID))
	require.NoError(t, app.DB.QueryRow("SELECT id FROM users WHERE external_id = $1", bobSub).Scan(&bobID))

	expiresAt := time.Now().Add(-time.Hour).UTC().Truncate(time.Microsecond)
	var couponID int64
	err := app.DB.QueryRow(`
		INSERT INTO coupons (title, sender_id, recipient_id, expires_at)
		VALUES ('stale', $1, $2, $3)
		RETURNING id
	`, aliceID, bobID, expiresAt).Scan(&couponID)
	require.NoError(t, err)

	resp := request(t, app, http.MethodGet, "/api/coupons/received", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var received []domain.Coupon
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&received))
	resp.Body.Close()
	require.Len(t, received, 1)
	assert.Equal(t, domain.CouponExpired, received[0].Status)
	require.NotNil(t, received[0].FinishedAt)
	assert.True(t, received[0].FinishedAt.Equal(expiresAt))

	// the write-back landed, with finished_at = expires_at exactly
	var status string
	var finishedAt time.Time
	err = app.DB.QueryRow("SELECT status, finished_at FROM coupons WHERE id = $1", couponID).Scan(&status, &finishedAt)
	require.NoError(t, err)
	assert.Equal(t, "expired", status)
	assert.True(t, finishedAt.Equal(expiresAt))

	// redeeming it now reports expiration, not success
	resp = request(t, app, http.MethodPost, fmt.Sprintf("/api/coupons/%d/redeem", couponID), bob.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}
