package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
	"github.com/imsujinpark/project-cutepon-sub000/internal/metrics"
)

type couponService struct {
	coupons ports.CouponRepository
	users   ports.UserRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCouponService(coupons ports.CouponRepository, users ports.UserRepository, m *metrics.Metrics) ports.CouponService {
	return &couponService{
		coupons: coupons,
		users:   users,
		metrics: m,
		now:     time.Now,
	}
}

func (s *couponService) Send(ctx context.Context, senderID int64, input ports.SendCouponInput) (*domain.Coupon, error) {
	recipient, err := s.users.GetByPublicID(ctx, input.RecipientPublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}
	if recipient == nil {
		return nil, domain.ErrUnknownRecipient
	}

	coupon := domain.NewCoupon(input.Title, input.Description, senderID, recipient.ID, input.ExpiresAt, s.now())
	if err := s.coupons.Save(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to save coupon: %w", err)
	}
	s.metrics.CouponsSent.Inc()
	return coupon, nil
}

func (s *couponService) Redeem(ctx context.Context, actingUserID, couponID int64) (*domain.Coupon, error) {
	now := s.now()
	coupon, err := s.load(ctx, couponID, now)
	if err != nil {
		return nil, err
	}

	redeemed, err := coupon.Redeem(actingUserID, now)
	if err != nil {
		return nil, err
	}

	ok, err := s.coupons.FinishIfActive(ctx, coupon.ID, domain.CouponRedeemed, now)
	if err != nil {
		return nil, fmt.Errorf("failed to persist redeem: %w", err)
	}
	if !ok {
		return nil, s.lostRaceError(ctx, coupon.ID, now)
	}
	s.metrics.CouponsRedeemed.Inc()
	return &redeemed, nil
}

func (s *couponService) Delete(ctx context.Context, actingUserID, couponID int64) (*domain.Coupon, error) {
	now := s.now()
	coupon, err := s.load(ctx, couponID, now)
	if err != nil {
		return nil, err
	}

	deleted, err := coupon.Delete(actingUserID, now)
	if err != nil {
		return nil, err
	}

	ok, err := s.coupons.FinishIfActive(ctx, coupon.ID, domain.CouponDeleted, now)
	if err != nil {
		return nil, fmt.Errorf("failed to persist delete: %w", err)
	}
	if !ok {
		return nil, s.lostRaceError(ctx, coupon.ID, now)
	}
	s.metrics.CouponsDeleted.Inc()
	return &deleted, nil
}

func (s *couponService) ListReceived(ctx context.Context, userID int64) ([]*domain.Coupon, error) {
	coupons, err := s.coupons.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received coupons: %w", err)
	}
	return s.reconcileAll(ctx, coupons), nil
}

func (s *couponService) ListSent(ctx context.Context, userID int64) ([]*domain.Coupon, error) {
	coupons, err := s.coupons.ListBySender(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent coupons: %w", err)
	}
	return s.reconcileAll(ctx, coupons), nil
}

// load fetches the coupon and reconciles it against now, persisting a
// lazily-detected expiration before the caller acts on it.
func (s *couponService) load(ctx context.Context, couponID int64, now time.Time) (*domain.Coupon, error) {
	coupon, err := s.coupons.GetByID(ctx, couponID)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if coupon == nil {
		return nil, domain.ErrCouponNotFound
	}
	if reconciled := coupon.Reconcile(now); reconciled.Status != coupon.Status {
		s.persistExpiry(ctx, coupon)
		return &reconciled, nil
	}
	return coupon, nil
}

// reconcileAll applies the read-time expiration check to every element and
// writes detected expirations back before the list is exposed.
func (s *couponService) reconcileAll(ctx context.Context, coupons []*domain.Coupon) []*domain.Coupon {
	now := s.now()
	reconciled := make([]*domain.Coupon, 0, len(coupons))
	for _, coupon := range coupons {
		c := coupon.Reconcile(now)
		if c.Status != coupon.Status {
			s.persistExpiry(ctx, coupon)
		}
		reconciled = append(reconciled, &c)
	}
	return reconciled
}

// persistExpiry writes an expiration detected at read time. The CAS loses
// quietly if some other transition landed first; a storage failure only
// costs the write-back, never the read.
func (s *couponService) persistExpiry(ctx context.Context, coupon *domain.Coupon) {
	ok, err := s.coupons.FinishIfActive(ctx, coupon.ID, domain.CouponExpired, coupon.ExpiresAt)
	if err != nil {
		slog.Error("failed to persist lazy expiration", "coupon_id", coupon.ID, "error", err)
		return
	}
	if ok {
		s.metrics.CouponsExpired.Inc()
	}
}

// lostRaceError reports the state that beat us to a terminal transition.
func (s *couponService) lostRaceError(ctx context.Context, couponID int64, now time.Time) error {
	coupon, err := s.coupons.GetByID(ctx, couponID)
	if err != nil || coupon == nil {
		return domain.ErrCouponNotActive
	}
	reconciled := coupon.Reconcile(now)
	if reconciled.Status == domain.CouponExpired {
		return domain.ErrCouponExpired
	}
	return domain.ErrCouponNotActive
}
