package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositIsTerminal(t *testing.T) {
	for status, terminal := range map[string]bool{
		DepositStatusNew:       false,
		DepositStatusPending:   false,
		DepositStatusCompleted: true,
		DepositStatusFailed:    true,
	} {
		d := Deposit{Status: status}
		assert.Equal(t, terminal, d.IsTerminal(), status)
	}
}

func TestResetDraftClearsCarriedState(t *testing.T) {
	couponID := uint64(3)
	creditID := uint64(5)
	payID := "pp-123"
	name := "Small Pack"

	d := Deposit{
		OrderCode:  "LP 123456",
		Status:     DepositStatusPending,
		CouponID:   &couponID,
		CreditID:   &creditID,
		PayOrderID: &payID,
		Receipt:    SettlementReceipt{PackageName: &name},
	}

	d.ResetDraft()

	assert.Equal(t, DepositStatusNew, d.Status)
	assert.Nil(t, d.CouponID)
	assert.Nil(t, d.CreditID)
	assert.Nil(t, d.PayOrderID)
	assert.Equal(t, SettlementReceipt{}, d.Receipt)
	// The order code is the user-visible correlation handle and survives.
	assert.Equal(t, "LP 123456", d.OrderCode)
}

func TestAttachReceipt(t *testing.T) {
	pkg := &Package{Name: "Huge Pack", Points: 5000}
	price := decimal.NewFromInt(99)

	t.Run("without coupon", func(t *testing.T) {
		var d Deposit
		d.AttachReceipt(pkg, nil, price)

		require.NotNil(t, d.Receipt.PackageName)
		assert.Equal(t, "Huge Pack", *d.Receipt.PackageName)
		assert.True(t, d.Receipt.PackagePrice.Equal(price))
		assert.Equal(t, int64(5000), *d.Receipt.PackagePoints)
		assert.Nil(t, d.Receipt.CouponCode)
	})

	t.Run("with coupon", func(t *testing.T) {
		coupon := &Coupon{
			Code:        "CP1001",
			CouponType:  CouponTypeDiscount,
			CouponValue: decimal.NewFromInt(15),
		}

		var d Deposit
		d.AttachReceipt(pkg, coupon, price)

		require.NotNil(t, d.Receipt.CouponCode)
		assert.Equal(t, "CP1001", *d.Receipt.CouponCode)
		assert.Equal(t, CouponTypeDiscount, *d.Receipt.CouponType)
		assert.True(t, d.Receipt.CouponValue.Equal(decimal.NewFromInt(15)))
	})

	t.Run("snapshot is detached from the source rows", func(t *testing.T) {
		p := &Package{Name: "Mini", Points: 100}
		var d Deposit
		d.AttachReceipt(p, nil, decimal.NewFromInt(5))

		p.Name = "Renamed"
		p.Points = 0

		assert.Equal(t, "Mini", *d.Receipt.PackageName)
		assert.Equal(t, int64(100), *d.Receipt.PackagePoints)
	})
}
