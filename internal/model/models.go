package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User statuses
const (
	UserStatusActive  = "active"
	UserStatusBanned  = "banned"
	UserStatusPending = "pending"
)

// Service tiers. The tier fixes the point-cost multiplier for feature requests.
const (
	TierNormal   = "normal"   // x1
	TierAdvanced = "advanced" // x2
	TierPriority = "priority" // x3
)

// TierMultiplier returns the point-cost multiplier for a tier.
// Unknown tiers fall back to x1.
func TierMultiplier(tier string) int64 {
	switch tier {
	case TierAdvanced:
		return 2
	case TierPriority:
		return 3
	default:
		return 1
	}
}

// User is the root aggregate: owns deposits and ledger entries.
type User struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string         `gorm:"type:varchar(255);not null;unique" json:"username"`
	Email        string         `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Status       string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active, banned, pending
	Tier         string         `gorm:"type:varchar(20);not null;default:'normal'" json:"tier"`   // normal, advanced, priority
	IsVN         bool           `gorm:"not null;default:false" json:"is_vn"`
	ExpiresAt    *time.Time     `json:"expires_at"` // subscription expiry, extended by completed deposits
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Deposits     []Deposit     `gorm:"foreignKey:UserID" json:"deposits,omitempty"`
}

// Package is the read-only points catalog entry.
type Package struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Type         string          `gorm:"type:varchar(32);not null;index" json:"type"` // trial, mini, small, huge, ...
	PriceUSD     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price_usd"`
	PriceVND     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price_vnd"`
	Points       int64           `gorm:"not null" json:"points"`
	DurationDays int             `gorm:"not null;default:0" json:"duration_days"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Credit is the payment-method registry (qrcode, paypal, ...).
// Rows are lazily upserted the first time each payment adapter settles.
type Credit struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(64);not null;unique" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (Package) TableName() string {
	return "packages"
}

func (Credit) TableName() string {
	return "credits"
}
