package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks coupon lifecycle transitions and credential issuance.
type Metrics struct {
	CouponsSent     prometheus.Counter
	CouponsRedeemed prometheus.Counter
	CouponsDeleted  prometheus.Counter
	CouponsExpired  prometheus.Counter
	TokensIssued    prometheus.Counter
	TokensRefreshed prometheus.Counter
}

// New registers all counters against reg. Tests pass a fresh registry so
// parallel suites do not collide on the default one.
func New(reg prometheus.Registerer) *Metrics {
	auto := promauto.With(reg)
	return &Metrics{
		CouponsSent: auto.NewCounter(prometheus.CounterOpts{
			Name: "cutepon_coupons_sent_total",
			Help: "Total number of coupons sent",
		}),
		CouponsRedeemed: auto.NewCounter(prometheus.CounterOpts{
			Name: "cutepon_coupons_redeemed_total",
			Help: "Total number of coupons redeemed",
		}),
		CouponsDeleted: auto.NewCounter(prometheus.CounterOpts{
			Name: "cutepon_coupons_deleted_total",
			Help: "Total number of coupons deleted by their recipient",
		}),
		CouponsExpired: auto.NewCounter(prometheus.CounterOpts{
			Name: "cutepon_coupons_expired_total",
			Help: "Total number of expirations detected lazily on read",
		}),
		TokensIssued: auto.NewCounter(prometheus.CounterOpts{
			Name: "cutepon_tokens_issued_total",
			Help: "Total number of credential pairs issued at login",
		}),
		TokensRefreshed: auto.NewCounter(prometheus.CounterOpts{
			Name: "cutepon_tokens_refreshed_total",
			Help: "Total number of credential pairs rotated via refresh",
		}),
	}
}
