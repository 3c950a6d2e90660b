package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics defines the accounting-facing metrics.
type BusinessMetrics struct {
	UserRegisteredTotal  prometheus.Counter
	OrdersCreatedTotal   prometheus.Counter
	DepositsSettledTotal *prometheus.CounterVec
	PointsCreditedTotal  prometheus.Counter
	PointsDebitedTotal   *prometheus.CounterVec
	CouponsRedeemedTotal *prometheus.CounterVec
}

// Global Metrics Instance
var Business *BusinessMetrics

// InitBusinessMetrics initializes the business metric set.
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		UserRegisteredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "points_user_registered_total",
			Help: "The total number of registered users",
		}),
		OrdersCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "points_orders_created_total",
			Help: "The total number of deposit orders created or rewritten",
		}),
		DepositsSettledTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "points_deposits_settled_total",
			Help: "The total number of settled deposits",
		}, []string{"provider", "outcome"}),
		PointsCreditedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "points_credited_total",
			Help: "The total number of points credited via settlements",
		}),
		PointsDebitedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "points_debited_total",
			Help: "The total number of points debited by feature requests",
		}, []string{"service"}),
		CouponsRedeemedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "points_coupons_redeemed_total",
			Help: "The total number of coupon redemptions at settlement",
		}, []string{"coupon_type"}),
	}
}
