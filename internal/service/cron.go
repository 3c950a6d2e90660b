package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"linkpulse-core/internal/model"
	"linkpulse-core/pkg/logger"
	"linkpulse-core/pkg/utils/lock"
)

// CronService runs the periodic housekeeping jobs. Each job takes a
// distributed lock first so only one instance of a multi-node deployment
// executes it.
type CronService struct {
	cron     *cron.Cron
	db       *gorm.DB
	redis    *redis.Client
	orderTTL time.Duration
}

func NewCronService(db *gorm.DB, rdb *redis.Client, orderTTL time.Duration) *CronService {
	return &CronService{
		cron:     cron.New(),
		db:       db,
		redis:    rdb,
		orderTTL: orderTTL,
	}
}

func (s *CronService) Start() {
	_, _ = s.cron.AddFunc("@every 5m", s.FailStaleOrders)

	s.cron.Start()
	logger.Info("Cron Service started")
}

func (s *CronService) Stop() {
	s.cron.Stop()
	logger.Info("Cron Service stopped")
}

// FailStaleOrders fails drafts that sat in new/pending past the order TTL.
// Settlement only touches rows still in {new, pending}, so an event arriving
// after the sweep is dropped as a late duplicate rather than double-handled.
func (s *CronService) FailStaleOrders() {
	ctx := context.Background()
	lockKey := "cron:lock:fail_stale_orders"

	locker := lock.NewRedisLock(s.redis)
	locked, err := locker.Acquire(ctx, lockKey, 30*time.Second)
	if err != nil || !locked {
		logger.Debug("FailStaleOrders: lock held elsewhere, skipping")
		return
	}
	defer locker.Release(ctx, lockKey)

	cutoff := time.Now().Add(-s.orderTTL)
	res := s.db.Model(&model.Deposit{}).
		Where("status IN ? AND updated_at < ?", []string{model.DepositStatusNew, model.DepositStatusPending}, cutoff).
		Update("status", model.DepositStatusFailed)
	if res.Error != nil {
		logger.Error("FailStaleOrders: sweep failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		logger.Info("FailStaleOrders: expired stale orders", zap.Int64("count", res.RowsAffected))
	}
}
