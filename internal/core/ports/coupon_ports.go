package ports

import (
	"context"
	"time"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
)

type CouponRepository interface {
	// Save inserts the coupon and fills in its assigned ID.
	Save(ctx context.Context, coupon *domain.Coupon) error
	// GetByID returns (nil, nil) when no such coupon exists.
	GetByID(ctx context.Context, id int64) (*domain.Coupon, error)
	ListByRecipient(ctx context.Context, userID int64) ([]*domain.Coupon, error)
	ListBySender(ctx context.Context, userID int64) ([]*domain.Coupon, error)
	// FinishIfActive moves the coupon out of the active status, but only if
	// it is still stored as active. Reports whether the row was updated, so
	// concurrent redeem/delete/expire on the same coupon cannot all win.
	FinishIfActive(ctx context.Context, id int64, status domain.CouponStatus, finishedAt time.Time) (bool, error)
}

type SendCouponInput struct {
	RecipientPublicID string
	Title             string
	Description       string
	ExpiresAt         time.Time
}

type CouponService interface {
	Send(ctx context.Context, senderID int64, input SendCouponInput) (*domain.Coupon, error)
	Redeem(ctx context.Context, actingUserID, couponID int64) (*domain.Coupon, error)
	Delete(ctx context.Context, actingUserID, couponID int64) (*domain.Coupon, error)
	ListReceived(ctx context.Context, userID int64) ([]*domain.Coupon, error)
	ListSent(ctx context.Context, userID int64) ([]*domain.Coupon, error)
}
