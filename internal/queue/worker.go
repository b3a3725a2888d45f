package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/logger"
	"github.com/coffeegram/coffee-backend/pkg/push"
)

// Worker consumes background tasks
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker wires the task handlers onto an asynq server
func NewWorker(redisAddr, password string, db, concurrency int,
	tokens repository.DeviceTokenRepository, pusher *push.Client) *Worker {

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		asynq.Config{Concurrency: concurrency},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePushDeliver, pushDeliverHandler(tokens, pusher))

	return &Worker{server: server, mux: mux}
}

// Run blocks until the server stops
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown drains in-flight tasks
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// pushDeliverHandler fans one notification out to every device of the
// recipient. A recipient with no registered devices is not an error.
func pushDeliverHandler(tokens repository.DeviceTokenRepository, pusher *push.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload PushDeliverPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("decode push payload: %w", err)
		}

		deviceTokens, err := tokens.ListForUser(ctx, payload.Email)
		if err != nil {
			return fmt.Errorf("list device tokens: %w", err)
		}
		if len(deviceTokens) == 0 {
			return nil
		}

		log := logger.GetLogger()
		notification := push.Notification{Title: payload.Title, Body: payload.Body}
		for _, token := range deviceTokens {
			if err := pusher.Send(ctx, token, notification); err != nil {
				log.Warn().Err(err).Str("email", payload.Email).Msg("push delivery failed")
			}
		}
		return nil
	}
}
