package handler

import (
	"net/http"
	"strings"

	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	ws "github.com/Ayush-Repositories/decyber-v2/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the live scoreboard stream. The stream is read-only for
// viewers: the server pushes the full state snapshot, clients push nothing.
type WSHandler struct {
	hub             *ws.Hub
	snapshotService *service.SnapshotService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ws.Hub, snapshotService *service.SnapshotService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:             hub,
		snapshotService: snapshotService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// StateStream godoc
// WS /ws/v1/state
// Upgrades to WebSocket, sends the current snapshot immediately, then streams
// a fresh snapshot after every state change.
func (h *WSHandler) StateStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	// First frame: the snapshot as of connect, so the viewer never waits for
	// the next mutation to render. Written before Register so no writer
	// goroutine exists yet to race with.
	payload, err := h.snapshotService.Payload(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Initial snapshot failed")
		_ = conn.Close()
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		_ = conn.Close()
		return
	}

	client := h.hub.Register(conn)
	defer h.hub.Unregister(client)

	// Viewers send nothing; the read loop only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}
	}
}
