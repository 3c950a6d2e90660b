package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"linkpulse-core/internal/model"
	"linkpulse-core/internal/service/mq"
	"linkpulse-core/pkg/logger"
)

// RelayService moves outbox rows to the message queue.
// At-least-once: a row is marked SENT only after a successful publish, so a
// crash between publish and update re-delivers and consumers must be
// idempotent.
type RelayService struct {
	db       *gorm.DB
	producer mq.Producer
	interval time.Duration
}

func NewRelayService(db *gorm.DB, producer mq.Producer) *RelayService {
	return &RelayService{
		db:       db,
		producer: producer,
		interval: 500 * time.Millisecond,
	}
}

func (s *RelayService) Start(ctx context.Context) {
	logger.Info("[Relay] outbox relay started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("[Relay] outbox relay stopped")
			return
		case <-ticker.C:
			s.processPendingMessages(ctx)
		}
	}
}

func (s *RelayService) processPendingMessages(ctx context.Context) {
	// 1. A bounded batch of pending rows.
	var messages []model.OutboxMessage
	if err := s.db.Where("status = ?", "PENDING").Limit(50).Find(&messages).Error; err != nil {
		logger.Error("[Relay] query failed", zap.Error(err))
		return
	}

	if len(messages) == 0 {
		return
	}

	for _, msg := range messages {
		// 2. Publish with the stored partition key.
		if err := s.producer.Publish(ctx, msg.Topic, msg.Key, msg.Payload); err != nil {
			logger.Error("[Relay] publish failed", zap.Uint64("id", msg.ID), zap.Error(err))
			continue
		}

		// 3. Mark SENT only after the publish succeeded.
		if err := s.db.Model(&msg).Update("status", "SENT").Error; err != nil {
			logger.Error("[Relay] status update failed", zap.Uint64("id", msg.ID), zap.Error(err))
		}
	}
}
