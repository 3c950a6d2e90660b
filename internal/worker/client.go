package worker

import (
	"github.com/hibiken/asynq"
)

// Client wraps the asynq client.
type Client struct {
	client *asynq.Client
}

// NewClient initializes the task queue client.
// addr: "localhost:6379"
func NewClient(addr string, password string, db int) *Client {
	c := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Client{client: c}
}

// Enqueue pushes a task onto the queue.
func (c *Client) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return c.client.Enqueue(task, opts...)
}

// Close closes the client connection.
func (c *Client) Close() error {
	return c.client.Close()
}
