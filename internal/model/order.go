package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deposit statuses. new -> pending -> completed | failed.
// completed and failed are terminal.
const (
	DepositStatusNew       = "new"
	DepositStatusPending   = "pending"
	DepositStatusCompleted = "completed"
	DepositStatusFailed    = "failed"
)

// OrderCodePrefix + 6 ASCII digits is the human-shareable order code.
const OrderCodePrefix = "LP "

// Coupon types
const (
	CouponTypeIncrease = "increase" // fixed amount
	CouponTypeDiscount = "discount" // percentage
	CouponTypeReward   = "reward"   // fixed amount
)

// CouponCodePrefix + the numeric code supplied at creation, no separator.
const CouponCodePrefix = "CP"

// Coupon is validated at order time; redemption bookkeeping happens at
// settlement (RedeemedCount++ / MaxRedemptions--, remaining-uses semantics).
type Coupon struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint64          `gorm:"not null;index" json:"user_id"` // issuing context, not necessarily the redeemer
	Code           string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	CouponType     string          `gorm:"type:varchar(20);not null" json:"coupon_type"`  // increase, discount, reward
	CouponValue    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"coupon_value"` // percent if discount, absolute otherwise
	MaxRedemptions int             `gorm:"not null;default:1" json:"max_redemptions"`     // remaining uses; 0 means exhausted
	RedeemedCount  int             `gorm:"not null;default:0" json:"redeemed_count"`
	ExpiresAt      *time.Time      `json:"expires_at"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// SettlementReceipt is the immutable pricing snapshot written exactly once,
// at the pending -> completed transition. It keeps reports stable even if the
// catalog or the coupon changes later. All fields are nil while the order is a
// draft.
type SettlementReceipt struct {
	PackageName   *string          `gorm:"type:varchar(255)" json:"package_name,omitempty"`
	PackagePrice  *decimal.Decimal `gorm:"type:decimal(20,2)" json:"package_price,omitempty"`
	PackagePoints *int64           `json:"package_points,omitempty"`
	CouponCode    *string          `gorm:"type:varchar(32)" json:"coupon_code,omitempty"`
	CouponValue   *decimal.Decimal `gorm:"type:decimal(20,2)" json:"coupon_value,omitempty"`
	CouponType    *string          `gorm:"type:varchar(20)" json:"coupon_type,omitempty"`
}

// Deposit is a purchase order for a points package.
// At most one deposit per user may sit in {new, pending}: order creation
// rewrites the existing draft instead of inserting a second one.
type Deposit struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64          `gorm:"not null;index" json:"user_id"`
	PackageID  uint64          `gorm:"not null" json:"package_id"`
	CouponID   *uint64         `gorm:"index" json:"coupon_id,omitempty"`
	CreditID   *uint64         `json:"credit_id,omitempty"` // payment method, set at settlement
	Quantity   int             `gorm:"not null;default:1" json:"quantity"`
	OrderCode  string          `gorm:"type:varchar(16);not null;uniqueIndex" json:"order_code"` // "LP " + 6 digits
	Currency   string          `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	MoneyVND   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"money_vnd"`
	Status     string          `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	PayOrderID *string         `gorm:"type:varchar(64);index" json:"pay_order_id,omitempty"` // external provider correlation id

	Receipt SettlementReceipt `gorm:"embedded" json:"receipt"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string {
	return "coupons"
}

func (Deposit) TableName() string {
	return "deposits"
}

// IsTerminal reports whether the deposit can no longer change state.
func (d *Deposit) IsTerminal() bool {
	return d.Status == DepositStatusCompleted || d.Status == DepositStatusFailed
}

// AttachReceipt writes the one-way pricing snapshot. Called only from the
// settlement transaction.
func (d *Deposit) AttachReceipt(pkg *Package, coupon *Coupon, price decimal.Decimal) {
	name := pkg.Name
	points := pkg.Points
	d.Receipt.PackageName = &name
	d.Receipt.PackagePrice = &price
	d.Receipt.PackagePoints = &points
	if coupon != nil {
		code := coupon.Code
		value := coupon.CouponValue
		ctype := coupon.CouponType
		d.Receipt.CouponCode = &code
		d.Receipt.CouponValue = &value
		d.Receipt.CouponType = &ctype
	}
}

// ResetDraft clears everything a rewritten cart order must not carry over:
// the old coupon, the receipt snapshot and the pending payment correlation.
func (d *Deposit) ResetDraft() {
	d.CouponID = nil
	d.CreditID = nil
	d.PayOrderID = nil
	d.Receipt = SettlementReceipt{}
	d.Status = DepositStatusNew
}
