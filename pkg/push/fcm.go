package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// Notification is the visible part of a push message
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
}

type sendRequest struct {
	To           string       `json:"to"`
	Notification Notification `json:"notification"`
}

// Client dispatches web-push notifications by device token
// against the FCM HTTP endpoint.
type Client struct {
	endpoint  string
	serverKey string
	http      *http.Client
}

// NewClient creates a push client. endpoint may be empty to use the default.
func NewClient(endpoint, serverKey string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		endpoint:  endpoint,
		serverKey: serverKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers a notification to a single device token
func (c *Client) Send(ctx context.Context, token string, n Notification) error {
	if token == "" {
		return fmt.Errorf("push: empty device token")
	}
	if n.Icon == "" {
		n.Icon = "/icon.png"
	}

	payload, err := json.Marshal(sendRequest{To: token, Notification: n})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push: send failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("push: endpoint returned %d: %s", res.StatusCode, string(body))
	}
	return nil
}
