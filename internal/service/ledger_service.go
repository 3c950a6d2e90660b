package service

import (
	"context"

	"gorm.io/gorm"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/errno"
)

// BalanceSummary is the derived view over a user's ledger.
type BalanceSummary struct {
	Credited int64 `json:"credited"`
	Debited  int64 `json:"debited"`
	Net      int64 `json:"net"`
}

// LedgerService owns the transactions table. The balance is always derived
// from the append-only history, never stored as a mutable counter, so a
// cached value can never drift from the ledger.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// ComputeBalance scans all non-deleted entries for the user.
func (s *LedgerService) ComputeBalance(ctx context.Context, userID uint64) (*BalanceSummary, error) {
	return computeBalance(s.db.WithContext(ctx), userID)
}

// computeBalance also serves the in-transaction re-check in the consumption
// path: pass the open tx so the aggregate sees the locked snapshot.
func computeBalance(tx *gorm.DB, userID uint64) (*BalanceSummary, error) {
	var row struct {
		Credited int64
		Debited  int64
	}

	err := tx.Model(&model.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN type = ? THEN points ELSE 0 END), 0) AS credited,
			COALESCE(SUM(CASE WHEN type = ? THEN points ELSE 0 END), 0) AS debited`,
			model.TxTypeCredit, model.TxTypeDebit).
		Where("user_id = ? AND status = ?", userID, true).
		Scan(&row).Error
	if err != nil {
		return nil, errno.ErrDatabase.WithMessage(err.Error())
	}

	return &BalanceSummary{
		Credited: row.Credited,
		Debited:  row.Debited,
		Net:      row.Credited - row.Debited,
	}, nil
}

// Append writes one immutable ledger entry inside the caller's transaction.
// Every append must share a transaction with the business event that
// justifies it (settlement, consumption); an unpaired ledger write is a
// correctness bug, so there is deliberately no variant taking a bare *DB.
func (s *LedgerService) Append(tx *gorm.DB, userID uint64, txType string, points int64, service, reference, description string, depositID *uint64) (*model.Transaction, error) {
	entry, err := model.NewTransaction(userID, txType, points, service, reference, description, depositID)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, errno.ErrDatabase.WithMessage(err.Error())
	}
	return entry, nil
}

// ListTransactions returns a page of the user's ledger, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, userID uint64, page, pageSize int) ([]model.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := s.db.WithContext(ctx).Model(&model.Transaction{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errno.ErrDatabase.WithMessage(err.Error())
	}

	var entries []model.Transaction
	err := q.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, errno.ErrDatabase.WithMessage(err.Error())
	}

	return entries, total, nil
}
