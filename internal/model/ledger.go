package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Transaction types. The direction lives in Type; Points is always a
// non-negative magnitude.
const (
	TxTypeCredit = "credit"
	TxTypeDebit  = "debit"
)

// Transaction is an immutable ledger entry. Rows are only ever inserted;
// soft delete exists for administrative correction and excludes the row
// from balance computation.
type Transaction struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64         `gorm:"not null;index" json:"user_id"`
	Type        string         `gorm:"type:varchar(10);not null" json:"type"` // credit, debit
	Points      int64          `gorm:"not null" json:"points"`
	Service     string         `gorm:"type:varchar(64);not null" json:"service"`    // origin tag: "indexing", "paypal", ...
	Reference   string         `gorm:"type:varchar(64);index" json:"reference"`     // correlation id
	DepositID   *uint64        `gorm:"index" json:"deposit_id,omitempty"`           // back-reference, not ownership
	Description string         `gorm:"type:varchar(255)" json:"description"`
	Status      bool           `gorm:"not null;default:true" json:"status"` // applied
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction validates the hard ledger invariants at construction time.
func NewTransaction(userID uint64, txType string, points int64, service, reference, description string, depositID *uint64) (*Transaction, error) {
	if txType != TxTypeCredit && txType != TxTypeDebit {
		return nil, fmt.Errorf("invalid transaction type %q", txType)
	}
	if points < 0 {
		return nil, fmt.Errorf("transaction points must be non-negative, got %d", points)
	}
	return &Transaction{
		UserID:      userID,
		Type:        txType,
		Points:      points,
		Service:     service,
		Reference:   reference,
		DepositID:   depositID,
		Description: description,
		Status:      true,
	}, nil
}
