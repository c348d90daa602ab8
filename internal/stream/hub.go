// Package stream fans pipeline payloads out to websocket subscribers and
// accepts control commands from them.
package stream

import (
	"context"
	"encoding/json"

	"hwmonitor/internal/logger"
	"hwmonitor/internal/output"
)

// Event types sent to clients.
const (
	EventSnapshot = "snapshot"
	EventAck      = "ack"
	EventError    = "error"
)

// ServerMessage is the envelope written to every client.
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type directMessage struct {
	client *Client
	data   []byte
}

type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	unicast    chan directMessage
	count      chan chan int
	done       chan struct{}

	log logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		unicast:    make(chan directMessage, 16),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run owns the client set until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "id", client.ID, "total_clients", len(h.clients))

		case client := <-h.unregister:
			h.drop(client)

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.log.Warn("ws: client channel full, dropping", "id", client.ID)
					h.drop(client)
				}
			}

		case m := <-h.unicast:
			if _, ok := h.clients[m.client]; !ok {
				continue
			}
			select {
			case m.client.send <- m.data:
			default:
				h.log.Warn("ws: client channel full, dropping", "id", m.client.ID)
				h.drop(m.client)
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.log.Info("ws: client unregistered", "id", client.ID, "total_clients", len(h.clients))
	}
}

// Publish encodes p and queues it for every client. It never blocks the
// caller; when the queue is full the payload is dropped.
func (h *Hub) Publish(p *output.PipelinePayload) {
	message, err := json.Marshal(ServerMessage{Type: EventSnapshot, Payload: p})
	if err != nil {
		h.log.Error("ws: failed to marshal payload", "error", err)
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("ws: broadcast queue full, payload dropped")
	}
}

// Clients reports the number of connected clients, or zero once Run has
// returned.
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) sendTo(c *Client, data []byte) {
	select {
	case h.unicast <- directMessage{client: c, data: data}:
	case <-h.done:
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
