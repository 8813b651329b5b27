package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 1024
)

// ErrSlowClient is returned by Send when the peer does not drain its
// messages fast enough. Fragments cannot be dropped, so the drawing fails.
var ErrSlowClient = errors.New("client send buffer full")

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	session  *Session
	ClientID string
	UserID   string
}

func NewClient(hub *Hub, conn *websocket.Conn, clientID, userID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		ClientID: clientID,
		UserID:   userID,
	}
}

// ReadPump feeds incoming messages to the session until the connection
// closes or the session fails.
func (c *Client) ReadPump(ctx context.Context) {
	status, reason := websocket.StatusNormalClosure, ""
	defer func() {
		c.session.Abort()
		c.hub.Unregister(c)
		c.conn.Close(status, reason)
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			err = c.session.reject(fmt.Errorf("invalid message: %w", err), 0)
		} else {
			err = c.session.Handle(&msg)
		}
		if err != nil {
			slog.Warn("session failed", "error", err, "session", c.session.ID)
			status, reason = websocket.StatusInternalError, "drawing failed"
			if errors.Is(err, ErrSlowClient) {
				status, reason = websocket.StatusTryAgainLater, "client too slow"
			}
			return
		}
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues msg for the write pump. Only the read pump calls it, so the
// channel is never written after the hub closes it.
func (c *Client) Send(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSlowClient
	}
}
