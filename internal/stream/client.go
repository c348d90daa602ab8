package stream

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"hwmonitor/internal/control"
	"hwmonitor/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ctl  *control.Controller
	log  logger.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, ctl *control.Controller, log logger.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		ID:   id,
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		ctl:  ctl,
		log:  log.With("client_id", id),
	}
}

// reply queues a message for this client only.
func (c *Client) reply(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("ws: failed to marshal reply", "error", err)
		return
	}
	c.hub.sendTo(c, data)
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("client disconnected", "error", err)
			}
			break
		}

		var cmd control.Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.log.Error("invalid json message", "error", err)
			c.reply(ServerMessage{Type: EventError, Error: "invalid json"})
			continue
		}

		if c.ctl == nil {
			c.reply(ServerMessage{Type: EventError, Error: "control disabled"})
			continue
		}
		if err := c.ctl.Apply(cmd); err != nil {
			c.log.Warn("command rejected", "action", cmd.Action, "error", err)
			c.reply(ServerMessage{Type: EventError, Error: err.Error()})
			continue
		}
		c.log.Info("command applied", "action", cmd.Action)
		c.reply(ServerMessage{Type: EventAck, Payload: cmd})
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
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			if _, err := w.Write(message); err != nil {
				w.Close()
				return
			}

			if err := w.Close(); err != nil {
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
