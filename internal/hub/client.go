package hub

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

// Client mediates between one WebSocket connection and the Hub.
// Nickname is owned by the hub goroutine; the pumps identify the
// connection by ID and never read it.
type Client struct {
	ID       uuid.UUID
	Nickname string
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
}

// readPump reads events from the WebSocket and feeds them to the hub.
// Message classification (including media resolution) happens here, on
// the connection's own goroutine.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		var ev domain.Event
		if err := c.Conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("readPump error (conn %s): %v", c.ID, err)
			}
			return
		}

		req := &ClientRequest{Client: c, Message: ev}

		if ev.Type == domain.EventMessage {
			var payload domain.ChatPayload
			if err := parsePayload(ev.Payload, &payload); err != nil || payload.Msg == "" {
				continue
			}
			relay := c.Hub.classifier.Classify(payload.Msg)
			req.Relay = &relay
		}

		c.Hub.inbound <- req
	}
}

// writePump drains the Send channel into the WebSocket. The hub closes
// Send to terminate the connection.
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("writePump error (conn %s): %v", c.ID, err)
			return
		}
	}
	// Hub closed the channel; tell the peer before dropping the socket.
	c.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

// enqueue attempts a non-blocking send so the hub loop never stalls on
// one connection. It reports whether the event was accepted.
func (c *Client) enqueue(ev domain.Event) bool {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal %s event for %s: %v", ev.Type, c.Nickname, err)
		return true
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// sendError delivers a fatal channel error to this client only.
func (c *Client) sendError(message string) {
	c.enqueue(domain.Event{Type: domain.EventError, Payload: domain.ErrorPayload{Message: message}})
}

func parsePayload(payload interface{}, result interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return errors.New("failed to marshal payload")
	}
	return json.Unmarshal(payloadBytes, result)
}
