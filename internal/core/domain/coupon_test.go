package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func activeCoupon(expiresAt time.Time) Coupon {
	return Coupon{
		ID:          1,
		Title:       "free hug",
		SenderID:    10,
		RecipientID: 20,
		CreatedAt:   baseTime,
		ExpiresAt:   expiresAt,
		Status:      CouponActive,
	}
}

func TestNewCouponDefaultsExpiry(t *testing.T) {
	coupon := NewCoupon("coffee", "one espresso", 10, 20, time.Time{}, baseTime)

	assert.Equal(t, CouponActive, coupon.Status)
	assert.Nil(t, coupon.FinishedAt)
	assert.Equal(t, baseTime.Add(DefaultCouponLifetime), coupon.ExpiresAt)
}

func TestNewCouponKeepsExplicitExpiry(t *testing.T) {
	expiresAt := baseTime.Add(48 * time.Hour)
	coupon := NewCoupon("coffee", "", 10, 20, expiresAt, baseTime)

	assert.Equal(t, expiresAt, coupon.ExpiresAt)
}

func TestReconcile(t *testing.T) {
	expiresAt := baseTime.Add(time.Second)

	tests := []struct {
		name       string
		coupon     Coupon
		now        time.Time
		wantStatus CouponStatus
	}{
		{"active before expiry", activeCoupon(expiresAt), baseTime.Add(500 * time.Millisecond), CouponActive},
		{"active at expiry boundary", activeCoupon(expiresAt), expiresAt, CouponExpired},
		{"active past expiry", activeCoupon(expiresAt), baseTime.Add(2 * time.Second), CouponExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.coupon.Reconcile(tt.now)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantStatus == CouponExpired {
				require.NotNil(t, got.FinishedAt)
				// finish time is the expiry boundary, not the observation time
				assert.Equal(t, expiresAt, *got.FinishedAt)
			} else {
				assert.Nil(t, got.FinishedAt)
			}
		})
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	expiresAt := baseTime.Add(time.Second)
	coupon := activeCoupon(expiresAt)

	first := coupon.Reconcile(baseTime.Add(2 * time.Second))
	second := first.Reconcile(baseTime.Add(10 * time.Minute))

	assert.Equal(t, first, second)
	assert.Equal(t, expiresAt, *second.FinishedAt)
}

func TestReconcileDoesNotTouchTerminalStates(t *testing.T) {
	expiresAt := baseTime.Add(time.Second)
	coupon := activeCoupon(expiresAt)

	redeemed, err := coupon.Redeem(20, baseTime.Add(500*time.Millisecond))
	require.NoError(t, err)

	// well past expiry, the redeemed status must not be overwritten
	later := redeemed.Reconcile(baseTime.Add(1500 * time.Millisecond))
	assert.Equal(t, CouponRedeemed, later.Status)
	assert.Equal(t, baseTime.Add(500*time.Millisecond), *later.FinishedAt)
}

func TestRedeem(t *testing.T) {
	expiresAt := baseTime.Add(time.Hour)

	t.Run("recipient redeems active coupon", func(t *testing.T) {
		now := baseTime.Add(time.Minute)
		got, err := activeCoupon(expiresAt).Redeem(20, now)
		require.NoError(t, err)
		assert.Equal(t, CouponRedeemed, got.Status)
		require.NotNil(t, got.FinishedAt)
		assert.Equal(t, now, *got.FinishedAt)
	})

	t.Run("sender may not redeem", func(t *testing.T) {
		_, err := activeCoupon(expiresAt).Redeem(10, baseTime)
		assert.ErrorIs(t, err, ErrWrongOwner)
	})

	t.Run("redeeming past expiry reports expiration", func(t *testing.T) {
		_, err := activeCoupon(expiresAt).Redeem(20, expiresAt.Add(time.Minute))
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("second redeem fails", func(t *testing.T) {
		redeemed, err := activeCoupon(expiresAt).Redeem(20, baseTime)
		require.NoError(t, err)
		_, err = redeemed.Redeem(20, baseTime.Add(time.Minute))
		assert.ErrorIs(t, err, ErrCouponNotActive)
	})
}

func TestDelete(t *testing.T) {
	expiresAt := baseTime.Add(time.Hour)

	t.Run("recipient deletes active coupon", func(t *testing.T) {
		now := baseTime.Add(time.Minute)
		got, err := activeCoupon(expiresAt).Delete(20, now)
		require.NoError(t, err)
		assert.Equal(t, CouponDeleted, got.Status)
		assert.Equal(t, now, *got.FinishedAt)
	})

	t.Run("sender may not delete", func(t *testing.T) {
		_, err := activeCoupon(expiresAt).Delete(10, baseTime)
		assert.ErrorIs(t, err, ErrDeleteNotAuthorized)
	})

	t.Run("deleting a redeemed coupon is unsupported", func(t *testing.T) {
		redeemed, err := activeCoupon(expiresAt).Redeem(20, baseTime)
		require.NoError(t, err)
		_, err = redeemed.Delete(20, baseTime.Add(time.Minute))
		assert.ErrorIs(t, err, ErrDeleteTerminalUnsupported)
	})

	t.Run("deleting past expiry is unsupported", func(t *testing.T) {
		_, err := activeCoupon(expiresAt).Delete(20, expiresAt.Add(time.Minute))
		assert.ErrorIs(t, err, ErrDeleteTerminalUnsupported)
	})
}

// status == active iff finished_at == nil, across every transition.
func TestActiveIffUnfinished(t *testing.T) {
	expiresAt := baseTime.Add(time.Hour)

	coupons := []Coupon{
		activeCoupon(expiresAt),
		activeCoupon(expiresAt).Reconcile(expiresAt.Add(time.Minute)),
	}
	if redeemed, err := activeCoupon(expiresAt).Redeem(20, baseTime); assert.NoError(t, err) {
		coupons = append(coupons, redeemed)
	}
	if deleted, err := activeCoupon(expiresAt).Delete(20, baseTime); assert.NoError(t, err) {
		coupons = append(coupons, deleted)
	}

	for _, c := range coupons {
		assert.Equal(t, c.Status == CouponActive, c.FinishedAt == nil, "status %s", c.Status)
	}
}
