package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/client"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/hub"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Restrict in production
		return true
	},
}

// WebSocketHandler upgrades dashboard connections and attaches them to the hub
type WebSocketHandler struct {
	hub *hub.Hub
	ctx context.Context
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(h *hub.Hub, ctx context.Context) *WebSocketHandler {
	return &WebSocketHandler{
		hub: h,
		ctx: ctx,
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("⚠️  WebSocket upgrade error: %v\n", err)
		return
	}

	clientID := uuid.New().String()
	c := client.NewClient(clientID, conn, h.hub)

	h.hub.Register(c)

	// Use handler context, not request context: the request context ends
	// when this handler returns
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)

	fmt.Printf("✓ WebSocket connection established: %s\n", clientID)
}
