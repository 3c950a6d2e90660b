package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/errno"
)

func TestCouponValidateOrder(t *testing.T) {
	svc := &CouponService{universalCode: "TRIAN20"}
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		coupon      *model.Coupon
		packageType string
		wantErr     error
	}{
		{
			name:    "nil coupon",
			coupon:  nil,
			wantErr: errno.ErrCouponNotFound,
		},
		{
			name:    "inactive beats expired",
			coupon:  &model.Coupon{IsActive: false, ExpiresAt: &past, MaxRedemptions: 1},
			wantErr: errno.ErrCouponInactive,
		},
		{
			name: "soft deleted reads as not found",
			coupon: &model.Coupon{
				IsActive:       true,
				MaxRedemptions: 1,
				DeletedAt:      gorm.DeletedAt{Time: past, Valid: true},
			},
			wantErr: errno.ErrCouponNotFound,
		},
		{
			name:    "expired beats exhausted",
			coupon:  &model.Coupon{IsActive: true, ExpiresAt: &past, MaxRedemptions: 0},
			wantErr: errno.ErrCouponExpired,
		},
		{
			name:    "no remaining uses",
			coupon:  &model.Coupon{IsActive: true, ExpiresAt: &future, MaxRedemptions: 0},
			wantErr: errno.ErrCouponExhausted,
		},
		{
			name:        "ineligible package type",
			coupon:      &model.Coupon{Code: "CP1001", IsActive: true, MaxRedemptions: 1},
			packageType: "trial",
			wantErr:     errno.ErrCouponNotApplicable,
		},
		{
			name:        "universal code bypasses the type restriction",
			coupon:      &model.Coupon{Code: "TRIAN20", IsActive: true, MaxRedemptions: 1},
			packageType: "trial",
			wantErr:     nil,
		},
		{
			name:        "eligible type passes",
			coupon:      &model.Coupon{Code: "CP1001", IsActive: true, ExpiresAt: &future, MaxRedemptions: 3},
			packageType: "small",
			wantErr:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.coupon, now, tt.packageType)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   *model.Coupon
		subtotal string
		want     string
	}{
		{"nil coupon", nil, "100", "0"},
		{
			"percentage truncates toward zero",
			&model.Coupon{CouponType: model.CouponTypeDiscount, CouponValue: decimal.NewFromInt(15)},
			"99", "14", // 14.85 floors to 14
		},
		{
			"percentage on a round subtotal",
			&model.Coupon{CouponType: model.CouponTypeDiscount, CouponValue: decimal.NewFromInt(20)},
			"100", "20",
		},
		{
			"fixed amount passes through",
			&model.Coupon{CouponType: model.CouponTypeIncrease, CouponValue: decimal.NewFromInt(50)},
			"30", "50",
		},
		{
			"reward passes through",
			&model.Coupon{CouponType: model.CouponTypeReward, CouponValue: decimal.NewFromInt(5)},
			"100", "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, _ := decimal.NewFromString(tt.subtotal)
			got := ComputeDiscount(tt.coupon, subtotal)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.String(), tt.want)
		})
	}
}

func TestApplyDiscountClampsAtZero(t *testing.T) {
	total := ApplyDiscount(decimal.NewFromInt(30), decimal.NewFromInt(50))
	assert.True(t, total.IsZero(), "got %s", total.String())

	total = ApplyDiscount(decimal.NewFromInt(99), decimal.NewFromInt(14))
	assert.True(t, total.Equal(decimal.NewFromInt(85)), "got %s", total.String())
}
