package mq

import "context"

// Producer publishes business events to the message queue.
type Producer interface {
	// Publish sends one message.
	// key is the partition key (usually the user id); empty means random partition.
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}
