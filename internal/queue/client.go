package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// Client enqueues background tasks. A nil Client drops tasks, which
// keeps push delivery optional in development.
type Client struct {
	inner *asynq.Client
}

// NewClient creates a task queue client backed by Redis
func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

// EnqueuePush schedules a push notification. Failures are logged and
// swallowed; delivery is best effort.
func (c *Client) EnqueuePush(ctx context.Context, email, title, body string) {
	if c == nil {
		return
	}

	task, err := NewPushDeliverTask(email, title, body)
	if err != nil {
		logger.GetLogger().Error().Err(err).Msg("push task build failed")
		return
	}

	info, err := c.inner.EnqueueContext(ctx, task)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Str("email", email).Msg("push task enqueue failed")
		return
	}
	logger.GetLogger().Debug().
		Str("task_id", info.ID).
		Str("email", email).
		Msg("push task enqueued")
}

// Close releases the underlying connection
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.inner.Close()
}

// Addr formats a host/port pair for asynq
func Addr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
