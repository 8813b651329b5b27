// Package live streams drawings over websockets: the client sends drawing
// commands one at a time and receives the SVG as the canvas writes it.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/typeid"
)

// Authenticator resolves the optional token of a websocket request. An
// empty user ID with a nil error means an anonymous connection.
type Authenticator interface {
	UserFromQuery(r *http.Request) (string, error)
}

type Handler struct {
	hub            *Hub
	auth           Authenticator
	originPatterns []string
	maxCommands    int
	opts           []canvas.Option
}

// NewHandler returns the websocket endpoint. auth may be nil, in which case
// every connection is anonymous.
func NewHandler(hub *Hub, auth Authenticator, origins []string, maxCommands int, opts ...canvas.Option) *Handler {
	return &Handler{
		hub:            hub,
		auth:           auth,
		originPatterns: originPatterns(origins),
		maxCommands:    maxCommands,
		opts:           opts,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var userID string
	if h.auth != nil {
		id, err := h.auth.UserFromQuery(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		userID = id
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, conn, uuid.NewString(), userID)
	client.session = NewSession(typeid.NewSessionID(), userID, client, h.maxCommands, h.opts...)

	if !h.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	if err := client.session.send(TypeWelcome, WelcomePayload{SessionID: client.session.ID, UserID: userID}); err != nil {
		slog.Error("send welcome", "error", err)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns turns allowed origins into the host patterns the websocket
// library matches against.
func originPatterns(origins []string) []string {
	var patterns []string
	for _, o := range origins {
		if o == "*" {
			patterns = append(patterns, "*")
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			patterns = append(patterns, o)
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
