package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

// Client is the terminal chat session.
type Client struct {
	Conn          *websocket.Conn
	Send          chan domain.Event
	assistantName string
}

// NewClient creates a disconnected client.
func NewClient(assistantName string) *Client {
	return &Client{
		Send:          make(chan domain.Event, 16),
		assistantName: assistantName,
	}
}

// Connect dials the server and announces the nickname.
func (c *Client) Connect(serverURL, nickname string) error {
	log.Printf("Connecting to %s...", serverURL)
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return err
	}
	log.Println("Connection successful!")
	c.Conn = conn

	go c.readPump()
	go c.writePump()

	c.Send <- domain.Event{Type: domain.EventJoin, Payload: domain.JoinPayload{Nickname: nickname}}
	return nil
}

func (c *Client) readPump() {
	defer c.Conn.Close()
	for {
		var ev domain.Event
		if err := c.Conn.ReadJSON(&ev); err != nil {
			log.Printf("Connection closed: %v", err)
			os.Exit(1)
		}
		c.render(ev)
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for ev := range c.Send {
		if err := c.Conn.WriteJSON(ev); err != nil {
			log.Printf("write error: %v", err)
			return
		}
	}
}

// HandleStdin reads lines from stdin and posts them to the room. A
// line addressing the assistant also sends the explicit forward.
func (c *Client) HandleStdin() {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Enter message (e.g., @" + c.assistantName + " hello):")
	fmt.Print("> ")
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		msg := strings.TrimSpace(line)
		if msg == "" {
			fmt.Print("> ")
			continue
		}
		c.Send <- domain.Event{Type: domain.EventMessage, Payload: domain.ChatPayload{Msg: msg}}
		if strings.HasPrefix(msg, "@"+c.assistantName) {
			c.Send <- domain.Event{Type: domain.EventAIRequest, Payload: domain.ChatPayload{Msg: msg}}
		}
		fmt.Print("> ")
	}
}

func (c *Client) render(ev domain.Event) {
	timestamp := time.Now().Format("15:04:05")
	var output string

	switch ev.Type {
	case domain.EventUserList:
		var payload domain.RosterPayload
		if err := decodePayload(ev.Payload, &payload); err != nil {
			return
		}
		output = fmt.Sprintf("[%s] Online: %s", timestamp, strings.Join(payload.Users, ", "))
	case domain.EventUserJoined:
		var payload domain.PresencePayload
		if err := decodePayload(ev.Payload, &payload); err != nil {
			return
		}
		output = fmt.Sprintf("[%s] * %s joined (online: %s)", timestamp, payload.Nickname, strings.Join(payload.Users, ", "))
	case domain.EventUserLeft:
		var payload domain.PresencePayload
		if err := decodePayload(ev.Payload, &payload); err != nil {
			return
		}
		output = fmt.Sprintf("[%s] * %s left (online: %s)", timestamp, payload.Nickname, strings.Join(payload.Users, ", "))
	case domain.EventMessage:
		var payload domain.MessagePayload
		if err := decodePayload(ev.Payload, &payload); err != nil {
			return
		}
		switch payload.Kind {
		case domain.KindMovie:
			output = fmt.Sprintf("[%s] %s shared a movie: %s", timestamp, payload.Nickname, payload.Payload)
		default:
			output = fmt.Sprintf("[%s] %s: %s", timestamp, payload.Nickname, payload.Payload)
		}
	case domain.EventError:
		var payload domain.ErrorPayload
		if err := decodePayload(ev.Payload, &payload); err != nil {
			return
		}
		fmt.Printf("\r[%s] ERROR: %s\n", timestamp, payload.Message)
		os.Exit(1)
	default:
		return
	}

	fmt.Printf("\r%s\n> ", output)
}
