package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// badgeChannel is the Redis pub/sub channel that fans badge events
// out across API instances.
const badgeChannel = "badge-events"

// Event is a server-to-client websocket frame
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// envelope is the cross-instance wire form of a targeted event
type envelope struct {
	Email string          `json:"email"`
	Data  json.RawMessage `json:"data"`
}

// Hub tracks connected clients per email and routes events to them.
// With Redis attached, events published on one instance reach clients
// connected to another.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	send       chan targeted
	rdb        *redis.Client
}

type targeted struct {
	email string
	data  []byte
}

// NewHub creates a hub. rdb may be nil for single-instance setups.
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan targeted, 256),
		rdb:        rdb,
	}
}

// Run owns the client map. Call it once in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	log := logger.GetLogger()

	if h.rdb != nil {
		go h.subscribe(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			if h.clients[client.email] == nil {
				h.clients[client.email] = make(map[*Client]bool)
			}
			h.clients[client.email][client] = true
			log.Debug().Str("email", client.email).Msg("ws client registered")

		case client := <-h.unregister:
			if conns, ok := h.clients[client.email]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.out)
					if len(conns) == 0 {
						delete(h.clients, client.email)
					}
				}
			}

		case t := <-h.send:
			for client := range h.clients[t.email] {
				select {
				case client.out <- t.data:
				default:
					// slow client, drop the connection
					delete(h.clients[t.email], client)
					close(client.out)
				}
			}
		}
	}
}

// SendToUser delivers an event to every connection of the email.
// With Redis the event goes through pub/sub, which reaches this
// instance's subscriber too; without Redis it is routed directly.
func (h *Hub) SendToUser(ctx context.Context, email string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.GetLogger().Error().Err(err).Msg("ws event marshal failed")
		return
	}

	if h.rdb == nil {
		h.send <- targeted{email: email, data: data}
		return
	}

	wire, err := json.Marshal(envelope{Email: email, Data: data})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(ctx, badgeChannel, wire).Err(); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("badge event publish failed")
		h.send <- targeted{email: email, data: data}
	}
}

func (h *Hub) subscribe(ctx context.Context) {
	log := logger.GetLogger()
	sub := h.rdb.Subscribe(ctx, badgeChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Warn().Err(err).Msg("badge event decode failed")
			continue
		}
		h.send <- targeted{email: env.Email, data: env.Data}
	}
}
