package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypePushDeliver is the task type for push notification delivery
const TypePushDeliver = "push:deliver"

// PushDeliverPayload carries one notification for one recipient
type PushDeliverPayload struct {
	Email string `json:"email"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewPushDeliverTask builds a delivery task for the recipient
func NewPushDeliverTask(email, title, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(PushDeliverPayload{
		Email: email,
		Title: title,
		Body:  body,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePushDeliver, payload, asynq.MaxRetry(3)), nil
}
