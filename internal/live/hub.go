package live

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Hub keeps track of the open drawing connections so they can be counted
// and closed on shutdown.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // clientID -> client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until ctx is cancelled, then closes every
// connection still open.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

// Register reports false when the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.mu.Unlock()

	slog.Info("client connected", "client", client.ClientID, "user", client.UserID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	close(client.send)
	h.mu.Unlock()

	slog.Info("client disconnected", "client", client.ClientID, "user", client.UserID)
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	clear(h.clients)
	close(h.done)
	h.mu.Unlock()

	for _, c := range clients {
		c.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	slog.Info("drawing hub stopped", "closed", len(clients))
}
