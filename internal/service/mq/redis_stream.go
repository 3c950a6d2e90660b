package mq

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"linkpulse-core/pkg/logger"

	"go.uber.org/zap"
)

// RedisProducer implements Producer on Redis Streams (XADD).
type RedisProducer struct {
	client *redis.Client
}

func NewRedisProducer(client *redis.Client) *RedisProducer {
	return &RedisProducer{
		client: client,
	}
}

// Publish appends the message to the stream named after the topic.
func (p *RedisProducer) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		Values: map[string]interface{}{
			"key":     key,
			"payload": payload,
		},
	}).Err()

	if err != nil {
		logger.Error("[MQ] publish failed", zap.Error(err))
		return fmt.Errorf("redis xadd error: %w", err)
	}

	return nil
}
