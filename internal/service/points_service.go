package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"linkpulse-core/internal/event"
	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/errno"
	"linkpulse-core/pkg/monitor"
)

// GateResult is the admission-control verdict. IsExpired takes precedence
// over IsEnough everywhere: an expired subscription must renew before
// consuming points, whatever the balance says.
type GateResult struct {
	IsEnough     bool  `json:"is_enough"`
	IsExpired    bool  `json:"is_expired"`
	NeededPoints int64 `json:"needed_points"`
	Balance      int64 `json:"balance"`
}

// ChargeFunc runs the feature's domain writes inside the consumption
// transaction and returns the points actually consumed. The actual charge may
// be below the pre-check estimate (fewer valid units than submitted) but
// never above it.
type ChargeFunc func(tx *gorm.DB) (actual int64, description string, err error)

// PointsService is the admission gate every point-consuming feature goes
// through before queueing work.
type PointsService struct {
	db     *gorm.DB
	ledger *LedgerService
}

func NewPointsService(db *gorm.DB, ledger *LedgerService) *PointsService {
	return &PointsService{db: db, ledger: ledger}
}

// evaluateGate is the pure decision over an already-known balance.
func evaluateGate(user *model.User, balance, needed int64, now time.Time) GateResult {
	res := GateResult{NeededPoints: needed, Balance: balance}
	if user.ExpiresAt != nil && !user.ExpiresAt.After(now) {
		res.IsExpired = true
		return res
	}
	res.IsEnough = balance >= needed
	return res
}

// CheckUserPoints runs the optimistic pre-check against the current ledger.
// The binding decision happens again inside Consume, under the user lock.
func (s *PointsService) CheckUserPoints(ctx context.Context, user *model.User, needed int64) (*GateResult, error) {
	bal, err := s.ledger.ComputeBalance(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	res := evaluateGate(user, bal.Net, needed, time.Now())
	return &res, nil
}

// Consume admits and charges a consumption in one transaction. The user row
// is locked first, so concurrent consumers for the same user serialize and
// the balance re-check cannot run against a stale snapshot. Admitted debits
// can never jointly overdraw.
func (s *PointsService) Consume(ctx context.Context, userID uint64, estimate int64, service, reference string, charge ChargeFunc) (int64, error) {
	if estimate < 0 {
		return 0, fmt.Errorf("estimate must be non-negative, got %d", estimate)
	}

	var charged int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Serialize per user.
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return errno.ErrUserNotFound
		}

		// 2. Re-check under the lock; same precedence as the pre-check.
		bal, err := computeBalance(tx, userID)
		if err != nil {
			return err
		}
		gate := evaluateGate(&user, bal.Net, estimate, time.Now())
		if gate.IsExpired {
			return errno.ErrSubscriptionExpired
		}
		if !gate.IsEnough {
			return errno.ErrInsufficientPoints
		}

		// 3. Domain writes + the real charge.
		actual, description, err := charge(tx)
		if err != nil {
			return err
		}
		if actual > estimate {
			return fmt.Errorf("charge %d exceeds admitted estimate %d", actual, estimate)
		}
		if actual < 0 {
			return fmt.Errorf("charge must be non-negative, got %d", actual)
		}

		// 4. The paired debit, in the same transaction as the work it pays for.
		if actual > 0 {
			if _, err := s.ledger.Append(tx, userID, model.TxTypeDebit, actual,
				service, reference, description, nil); err != nil {
				return err
			}
			if err := model.CreateOutboxMessage(tx, event.TopicPointsDebited,
				fmt.Sprintf("%d", userID), event.PointsDebitedEvent{
					UserID:    userID,
					Service:   service,
					Reference: reference,
					Points:    actual,
				}); err != nil {
				return errno.ErrDatabase.WithMessage(err.Error())
			}
		}

		charged = actual
		return nil
	})
	if err != nil {
		return 0, err
	}

	if charged > 0 {
		monitor.Business.PointsDebitedTotal.WithLabelValues(service).Add(float64(charged))
	}
	return charged, nil
}
