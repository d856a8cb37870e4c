package server

import (
	"encoding/json"
	"log"
	"time"

	"hukum-game/internal/protocol"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client represents a single WebSocket connection. Its ID doubles as the
// player id once it joins a room.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	ID       string // Unique identifier for the client/player
	Name     string // Player's chosen name
	RoomCode string // "" until the client creates or joins a room
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// ReadPump handles incoming messages from the WebSocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close from client %s (%s): %v", c.ID, c.conn.RemoteAddr(), err)
			}
			break
		}

		var msg protocol.Message
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Printf("Error unmarshalling message from client %s: %v", c.ID, err)
			c.sendError("Invalid message format.")
			continue
		}

		if msg.Type != protocol.TypePing {
			log.Printf("Received message type '%s' from client %s (%s)", msg.Type, c.ID, c.Name)
		}
		if !c.hub.submit(clientMessage{client: c, message: msg}) {
			return
		}
	}
}

// WritePump handles outgoing messages to the WebSocket connection.
func (c *Client) WritePump() {
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
				// Hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Write error to client %s (%s): %v", c.ID, c.Name, err)
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

// deliver queues an encoded message without blocking the hub. A client whose
// buffer is full is dropped.
func (c *Client) deliver(message []byte) {
	select {
	case c.send <- message:
	default:
		log.Printf("Failed to send message to client %s (channel full), dropping connection.", c.ID)
		if c.conn != nil {
			c.conn.Close()
		}
	}
}

func (c *Client) sendMessage(msgType string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		log.Printf("Error creating %s message for client %s: %v", msgType, c.ID, err)
		return
	}
	c.deliver(msg)
}

func (c *Client) sendError(message string) {
	c.sendMessage(protocol.TypeError, protocol.ErrorPayload{Message: message})
}
