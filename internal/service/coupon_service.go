package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/errno"
)

// couponEligibleTypes are the package types a regular coupon may be applied
// to. The universal code bypasses this restriction.
var couponEligibleTypes = map[string]bool{
	"mini":  true,
	"small": true,
	"huge":  true,
}

// CouponService validates coupon applicability and computes discounts.
// It never mutates redemption counters outside Redeem, which is called only
// from the settlement transaction.
type CouponService struct {
	db            *gorm.DB
	universalCode string
}

func NewCouponService(db *gorm.DB, universalCode string) *CouponService {
	return &CouponService{db: db, universalCode: universalCode}
}

// Resolve loads a coupon by code. Soft-deleted rows are invisible.
func (s *CouponService) Resolve(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.ErrCouponNotFound
	}
	if err != nil {
		return nil, errno.ErrDatabase.WithMessage(err.Error())
	}
	return &coupon, nil
}

// Validate runs the eligibility checks in a fixed order so the caller always
// gets the most specific reason: active -> not deleted -> not expired ->
// not exhausted -> package-type eligibility.
func (s *CouponService) Validate(coupon *model.Coupon, now time.Time, packageType string) error {
	if coupon == nil {
		return errno.ErrCouponNotFound
	}
	if !coupon.IsActive {
		return errno.ErrCouponInactive
	}
	if coupon.DeletedAt.Valid {
		return errno.ErrCouponNotFound
	}
	if coupon.ExpiresAt != nil && !coupon.ExpiresAt.After(now) {
		return errno.ErrCouponExpired
	}
	if coupon.MaxRedemptions <= 0 {
		return errno.ErrCouponExhausted
	}
	if coupon.Code != s.universalCode && !couponEligibleTypes[packageType] {
		return errno.ErrCouponNotApplicable
	}
	return nil
}

// ComputeDiscount returns the discount amount for a subtotal.
// Percentage coupons truncate toward zero: the customer never gains a
// fractional point from rounding.
func ComputeDiscount(coupon *model.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if coupon == nil {
		return decimal.Zero
	}
	if coupon.CouponType == model.CouponTypeDiscount {
		return subtotal.Mul(coupon.CouponValue).Div(decimal.NewFromInt(100)).Floor()
	}
	// increase / reward carry an absolute amount
	return coupon.CouponValue
}

// ApplyDiscount clamps the total at zero.
func ApplyDiscount(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Redeem consumes one use, atomically with the settlement that triggered it.
// The guarded UPDATE keeps racing settlements from driving the remaining-use
// counter below zero.
func (s *CouponService) Redeem(tx *gorm.DB, couponID uint64) error {
	res := tx.Model(&model.Coupon{}).
		Where("id = ? AND max_redemptions > 0", couponID).
		Updates(map[string]interface{}{
			"max_redemptions": gorm.Expr("max_redemptions - 1"),
			"redeemed_count":  gorm.Expr("redeemed_count + 1"),
		})
	if res.Error != nil {
		return errno.ErrDatabase.WithMessage(res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return errno.ErrCouponExhausted
	}
	return nil
}
