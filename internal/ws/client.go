package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/coffeegram/coffee-backend/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// Client is one websocket connection bound to an email
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	email string
	out   chan []byte
}

// NewClient wraps a connection and registers it with the hub
func NewClient(hub *Hub, conn *websocket.Conn, email string) *Client {
	client := &Client{
		hub:   hub,
		conn:  conn,
		email: email,
		out:   make(chan []byte, 64),
	}
	hub.register <- client
	return client
}

// ReadPump drains inbound frames. The stream is server-to-client only;
// inbound payloads are discarded, but the pump keeps pong handling and
// close detection alive.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.GetLogger().Debug().Err(err).Str("email", c.email).Msg("ws read error")
			}
			return
		}
	}
}

// WritePump flushes outbound events and keeps the connection alive
// with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
