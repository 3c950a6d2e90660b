package model

import (
	"time"
)

// IndexRequest statuses
const (
	IndexRequestQueued     = "queued"
	IndexRequestProcessing = "processing"
	IndexRequestDone       = "done"
)

// IndexRequest is one URL accepted into an indexing batch. The batch shares a
// Reference, which is also the reference on the debit ledger entry that paid
// for it.
type IndexRequest struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	URL       string    `gorm:"type:varchar(2048);not null" json:"url"`
	Reference string    `gorm:"type:varchar(64);not null;index" json:"reference"`
	Status    string    `gorm:"type:varchar(20);not null;default:'queued'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IndexRequest) TableName() string {
	return "index_requests"
}
