package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/domain"
	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

type CouponRepository struct {
	mu      sync.RWMutex
	nextID  int64
	coupons map[int64]domain.Coupon
}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{
		nextID:  1,
		coupons: make(map[int64]domain.Coupon),
	}
}

var _ ports.CouponRepository = (*CouponRepository)(nil)

func (r *CouponRepository) Save(_ context.Context, coupon *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coupon.ID = r.nextID
	r.nextID++
	r.coupons[coupon.ID] = *coupon
	return nil
}

func (r *CouponRepository) GetByID(_ context.Context, id int64) (*domain.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if coupon, ok := r.coupons[id]; ok {
		return &coupon, nil
	}
	return nil, nil
}

func (r *CouponRepository) ListByRecipient(_ context.Context, userID int64) ([]*domain.Coupon, error) {
	return r.filter(func(c domain.Coupon) bool { return c.RecipientID == userID }), nil
}

func (r *CouponRepository) ListBySender(_ context.Context, userID int64) ([]*domain.Coupon, error) {
	return r.filter(func(c domain.Coupon) bool { return c.SenderID == userID }), nil
}

func (r *CouponRepository) FinishIfActive(_ context.Context, id int64, status domain.CouponStatus, finishedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	coupon, ok := r.coupons[id]
	if !ok || coupon.Status != domain.CouponActive {
		return false, nil
	}
	coupon.Status = status
	coupon.FinishedAt = &finishedAt
	r.coupons[id] = coupon
	return true, nil
}

func (r *CouponRepository) filter(keep func(domain.Coupon) bool) []*domain.Coupon {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var coupons []*domain.Coupon
	for _, coupon := range r.coupons {
		if keep(coupon) {
			c := coupon
			coupons = append(coupons, &c)
		}
	}
	sort.Slice(coupons, func(i, j int) bool {
		return coupons[i].CreatedAt.After(coupons[j].CreatedAt)
	})
	return coupons
}
