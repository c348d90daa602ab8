package stream

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"hwmonitor/internal/control"
	"hwmonitor/internal/logger"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	ctl      *control.Controller
	log      logger.Logger
}

// NewHandler builds the websocket endpoint. An empty allowedOrigins accepts
// any origin. ctl may be nil for a read-only feed.
func NewHandler(hub *Hub, ctl *control.Controller, log logger.Logger, allowedOrigins []string) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if !slices.Contains(allowedOrigins, origin) {
				log.Warn("websocket origin rejected", "origin", origin)
				return false
			}
			return true
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		ctl:      ctl,
		log:      log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.ctl, h.log)
	if !h.hub.join(client) {
		conn.Close()
		return
	}
	go client.writePump()
	go client.readPump()

	h.log.Info("client connected", "remote_addr", conn.RemoteAddr())
}
