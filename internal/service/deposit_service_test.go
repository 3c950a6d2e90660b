package service

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/errno"
)

var orderCodeFormat = regexp.MustCompile(`^LP \d{6}$`)

func TestNewOrderCodeFormat(t *testing.T) {
	svc := &DepositService{genDigits: defaultGenDigits}

	neverTaken := func(string) (bool, error) { return false, nil }
	for i := 0; i < 50; i++ {
		code, err := svc.newOrderCode(neverTaken)
		require.NoError(t, err)
		assert.Regexp(t, orderCodeFormat, code)
	}
}

func TestNewOrderCodeRetriesOnCollision(t *testing.T) {
	// A deterministic generator that repeats itself twice before moving on.
	seq := []string{"111111", "111111", "222222"}
	i := 0
	svc := &DepositService{genDigits: func(n int) (string, error) {
		d := seq[i%len(seq)]
		i++
		return d, nil
	}}

	taken := map[string]bool{"LP 111111": true}
	code, err := svc.newOrderCode(func(c string) (bool, error) {
		return taken[c], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "LP 222222", code)
	assert.Equal(t, 3, i, "should have drawn until the first free code")
}

func TestNewOrderCodeGivesUpEventually(t *testing.T) {
	svc := &DepositService{genDigits: func(n int) (string, error) {
		return "999999", nil
	}}

	_, err := svc.newOrderCode(func(string) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, errno.ErrOrderCodeGeneration)
}

func TestResolveLocaleVN(t *testing.T) {
	tests := []struct {
		name           string
		acceptLanguage string
		userIsVN       bool
		want           bool
	}{
		{"header vi wins", "vi", false, true},
		{"header with region and weights", "vi-VN,vi;q=0.9,en;q=0.8", false, true},
		{"header is case insensitive", "VI-VN", false, true},
		{"foreign header falls back to the user flag", "en-US", true, true},
		{"foreign header, foreign user", "en-US", false, false},
		{"empty header falls back to the user flag", "", true, true},
		{"nothing set", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLocaleVN(tt.acceptLanguage, tt.userIsVN))
		})
	}
}

func TestResolvePrice(t *testing.T) {
	pkg := &model.Package{
		PriceUSD: decimal.NewFromInt(10),
		PriceVND: decimal.NewFromInt(250000),
	}

	tests := []struct {
		name         string
		localeVN     bool
		requested    string
		wantPrice    decimal.Decimal
		wantCurrency string
	}{
		{"VN locale asking for VND", true, "VND", pkg.PriceVND, "VND"},
		{"VN locale asking for vnd lowercase", true, "vnd", pkg.PriceVND, "VND"},
		{"VN locale asking for USD", true, "USD", pkg.PriceUSD, "USD"},
		{"foreign locale cannot buy in VND", false, "VND", pkg.PriceUSD, "USD"},
		{"foreign locale in USD", false, "USD", pkg.PriceUSD, "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, currency := resolvePrice(pkg, tt.localeVN, tt.requested)
			assert.True(t, price.Equal(tt.wantPrice), "got %s", price.String())
			assert.Equal(t, tt.wantCurrency, currency)
		})
	}
}

func TestPaymentMethodsPerLocale(t *testing.T) {
	assert.Equal(t, []string{MethodQRCode, MethodPayPal}, paymentMethodsFor(true))
	assert.Equal(t, []string{MethodPayPal}, paymentMethodsFor(false))
}

func TestCheckoutAcceptsOfferedMethods(t *testing.T) {
	// Order summary and checkout resolve the locale from the same inputs, so
	// every method the summary offers must pass the checkout check.
	cases := []struct {
		name   string
		header string
		isVN   bool
	}{
		{"vi header on a foreign account", "vi", false},
		{"vn account without header", "", true},
		{"foreign account", "en-US", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			locale := ResolveLocaleVN(tt.header, tt.isVN)
			for _, m := range paymentMethodsFor(locale) {
				assert.True(t, methodAllowed(locale, m), m)
			}
		})
	}

	// A foreign account browsing in Vietnamese is offered qrcode and may
	// select it; without the header the same account may not.
	assert.True(t, methodAllowed(ResolveLocaleVN("vi", false), MethodQRCode))
	assert.False(t, methodAllowed(ResolveLocaleVN("en-US", false), MethodQRCode))
}

func TestOrderTotalNeverNegative(t *testing.T) {
	// A fixed-amount coupon larger than the subtotal clamps the total at zero,
	// whatever the quantity.
	coupon := &model.Coupon{CouponType: model.CouponTypeIncrease, CouponValue: decimal.NewFromInt(1000)}
	for qty := 1; qty <= 5; qty++ {
		subtotal := decimal.NewFromInt(10).Mul(decimal.NewFromInt(int64(qty)))
		total := ApplyDiscount(subtotal, ComputeDiscount(coupon, subtotal))
		assert.False(t, total.IsNegative(), fmt.Sprintf("qty %d: total %s", qty, total.String()))
	}
}
