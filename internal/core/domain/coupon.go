package domain

import "time"

type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponRedeemed CouponStatus = "redeemed"
	CouponDeleted  CouponStatus = "deleted"
	CouponExpired  CouponStatus = "expired"
)

// DefaultCouponLifetime applies when the sender does not pick an expiry.
const DefaultCouponLifetime = 30 * 24 * time.Hour

// Coupon is a time-limited gift from one user to another. Creation fields
// are immutable; only Status and FinishedAt change, and only once: the
// active status is the sole state with outgoing transitions.
type Coupon struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	SenderID    int64        `json:"sender_id"`
	RecipientID int64        `json:"recipient_id"`
	CreatedAt   time.Time    `json:"created_at"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Status      CouponStatus `json:"status"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
}

// NewCoupon builds an active coupon. A zero expiresAt falls back to the
// default lifetime. Recipient existence is the caller's concern.
func NewCoupon(title, description string, senderID, recipientID int64, expiresAt, now time.Time) *Coupon {
	if expiresAt.IsZero() {
		expiresAt = now.Add(DefaultCouponLifetime)
	}
	return &Coupon{
		Title:       title,
		Description: description,
		SenderID:    senderID,
		RecipientID: recipientID,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
		Status:      CouponActive,
	}
}

// Terminal reports whether no further transitions are permitted.
func (c Coupon) Terminal() bool {
	return c.Status != CouponActive
}

// Reconcile derives the coupon's true status from its stored status and the
// current time. A stored-active coupon past its expiry is logically expired
// even though the row has not been rewritten yet; the finish time is the
// expiry boundary, not the observation time, so two observers at different
// real times agree on when it expired. Idempotent.
func (c Coupon) Reconcile(now time.Time) Coupon {
	if c.Status == CouponActive && !now.Before(c.ExpiresAt) {
		finished := c.ExpiresAt
		c.Status = CouponExpired
		c.FinishedAt = &finished
	}
	return c
}

// Redeem returns a redeemed copy, or the reason the acting user may not
// redeem. Expiration wins over a concurrent redeem: the check runs against
// the reconciled coupon, so redeeming past the expiry behaves exactly like
// acting on an expired coupon.
func (c Coupon) Redeem(actingUserID int64, now time.Time) (Coupon, error) {
	c = c.Reconcile(now)
	if c.RecipientID != actingUserID {
		return c, ErrWrongOwner
	}
	if c.Status == CouponExpired {
		return c, ErrCouponExpired
	}
	if c.Status != CouponActive {
		return c, ErrCouponNotActive
	}
	finished := now
	c.Status = CouponRedeemed
	c.FinishedAt = &finished
	return c, nil
}

// Delete returns a deleted copy. Only the recipient may delete, and only
// while the coupon is still active; deleting a finished coupon is not
// supported yet.
func (c Coupon) Delete(actingUserID int64, now time.Time) (Coupon, error) {
	c = c.Reconcile(now)
	if c.Terminal() {
		return c, ErrDeleteTerminalUnsupported
	}
	if c.RecipientID != actingUserID {
		return c, ErrDeleteNotAuthorized
	}
	finished := now
	c.Status = CouponDeleted
	c.FinishedAt = &finished
	return c, nil
}
