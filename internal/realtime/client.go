package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Authenticator maps an opaque session token to a user id. Empty id with
// nil error means the token is invalid and the socket stays anonymous.
type Authenticator interface {
	UserIDForToken(ctx context.Context, token string) (string, error)
}

// Client is one websocket connection. Anonymous clients receive
// broadcasts only; after an auth frame they also receive user-addressed
// pushes.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
	auth   Authenticator
	logg   *logger.Logger
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Serve upgrades the request and runs the connection until it closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, auth Authenticator) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		auth: auth,
		logg: h.logg,
	}
	h.register(client)

	go client.writePump()
	go client.readPump(r.Context())
	return nil
}

type inboundFrame struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}

		switch frame.Type {
		case "auth":
			c.handleAuth(ctx, frame.Token)
		case "ping":
			c.reply(map[string]string{"type": "pong"})
		}
	}
}

func (c *Client) handleAuth(ctx context.Context, token string) {
	if c.auth == nil || token == "" {
		return
	}
	userID, err := c.auth.UserIDForToken(ctx, token)
	if err != nil || userID == "" {
		c.reply(map[string]string{"type": "auth_failed"})
		return
	}

	// Re-register under the resolved user so addressed pushes reach us.
	c.hub.mu.Lock()
	if c.userID != "" {
		if set, ok := c.hub.byUser[c.userID]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(c.hub.byUser, c.userID)
			}
		}
	}
	c.userID = userID
	set, ok := c.hub.byUser[userID]
	if !ok {
		set = make(map[*Client]struct{})
		c.hub.byUser[userID] = set
	}
	set[c] = struct{}{}
	c.hub.mu.Unlock()

	c.reply(map[string]string{"type": "auth_ok", "user_id": userID})
}

func (c *Client) reply(payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
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
