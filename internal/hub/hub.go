// Package hub implements the room channel: a single shared chat room
// whose roster mutations, relays, and presence broadcasts are all
// serialized through one sequencer goroutine.
package hub

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/service"
)

// Responder produces the assistant's reply for a forwarded query.
type Responder interface {
	Reply(ctx context.Context, query string) (string, error)
}

// ClientRequest bundles a client with one decoded inbound event.
// Relay is set for 'message' events; it is built in the read pump so
// classification never runs on the sequencer.
type ClientRequest struct {
	Client  *Client
	Message domain.Event
	Relay   *RelayRequest
}

type assistantReply struct {
	original string
	reply    string
}

// Options configures a Hub.
type Options struct {
	AssistantName    string
	AssistantTimeout time.Duration
	Classifier       *Classifier
	Messages         service.IMessageRepository
	Responder        Responder
	Location         *time.Location
	HistoryLimit     int64
}

// Hub owns the room. Every roster mutation and every broadcast happens
// on the Run goroutine, so no client ever observes a roster that does
// not reflect the event that produced it.
type Hub struct {
	clients    map[*Client]bool
	roster     *Roster
	inbound    chan *ClientRequest
	register   chan *Client
	unregister chan *Client
	replies    chan assistantReply

	classifier       *Classifier
	messages         service.IMessageRepository
	responder        Responder
	assistantName    string
	assistantTimeout time.Duration
	location         *time.Location
	historyLimit     int64
}

// NewHub creates a Hub.
func NewHub(opts Options) *Hub {
	if opts.AssistantTimeout == 0 {
		opts.AssistantTimeout = 20 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.HistoryLimit == 0 {
		opts.HistoryLimit = 100
	}
	return &Hub{
		clients:          make(map[*Client]bool),
		roster:           NewRoster(),
		inbound:          make(chan *ClientRequest),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		replies:          make(chan assistantReply, 16),
		classifier:       opts.Classifier,
		messages:         opts.Messages,
		responder:        opts.Responder,
		assistantName:    opts.AssistantName,
		assistantTimeout: opts.AssistantTimeout,
		location:         opts.Location,
		historyLimit:     opts.HistoryLimit,
	}
}

// Run is the room sequencer. It must run on exactly one goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.dropClient(client)
		case request := <-h.inbound:
			h.handleRequest(request)
		case reply := <-h.replies:
			h.deliverReply(reply)
		}
	}
}

// ServeWs attaches an upgraded connection to the hub.
func (h *Hub) ServeWs(conn *websocket.Conn) {
	client := &Client{ID: uuid.New(), Hub: h, Conn: conn, Send: make(chan []byte, 256)}
	h.register <- client
	go client.writePump()
	go client.readPump()
}

// Online returns the live roster in join order, for REST presence.
func (h *Hub) Online() []string {
	return h.roster.Names()
}

// IsOnline reports whether a nickname is held by a live session.
func (h *Hub) IsOnline(nickname string) bool {
	return h.roster.Has(nickname)
}

func (h *Hub) addClient(client *Client) {
	h.clients[client] = true
}

// dropClient is the single leave path, shared by explicit disconnects,
// transport errors, and slow-consumer eviction. Duplicate signals for
// the same client are no-ops.
func (h *Hub) dropClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)

	if client.Nickname != "" && h.roster.Remove(client.Nickname) {
		h.broadcast(domain.Event{
			Type: domain.EventUserLeft,
			Payload: domain.PresencePayload{
				Nickname: client.Nickname,
				Users:    h.roster.Names(),
			},
		})
		log.Printf("User %s left (%d online)", client.Nickname, h.roster.Len())
	}

	close(client.Send)
}

func (h *Hub) handleRequest(req *ClientRequest) {
	// A rejected or evicted client's read pump keeps running until the
	// transport notices the close, so frames pipelined behind the one
	// that removed the client can still arrive. Its Send channel is
	// already closed; drop them.
	if _, ok := h.clients[req.Client]; !ok {
		return
	}

	switch req.Message.Type {
	case domain.EventJoin:
		h.handleJoin(req)
		return
	}

	if req.Client.Nickname == "" {
		req.Client.sendError("Join the room first.")
		return
	}

	switch req.Message.Type {
	case domain.EventMessage:
		h.handleRelay(req.Client, req.Relay)
	case domain.EventAIRequest:
		h.handleAssistantRequest(req)
	default:
		req.Client.sendError("Unknown event type: " + req.Message.Type)
	}
}

func (h *Hub) handleJoin(req *ClientRequest) {
	if req.Client.Nickname != "" {
		req.Client.sendError("Already joined.")
		return
	}
	var payload domain.JoinPayload
	if err := parsePayload(req.Message.Payload, &payload); err != nil || payload.Nickname == "" {
		h.reject(req.Client, "Nickname cannot be empty")
		return
	}
	if h.roster.Has(payload.Nickname) {
		h.reject(req.Client, service.ErrDuplicateNickname.Error())
		return
	}

	req.Client.Nickname = payload.Nickname
	h.roster.Add(payload.Nickname, req.Client)

	// Full roster to every member, the new one included.
	h.broadcast(domain.Event{
		Type: domain.EventUserJoined,
		Payload: domain.PresencePayload{
			Nickname: payload.Nickname,
			Users:    h.roster.Names(),
		},
	})

	req.Client.enqueue(domain.Event{
		Type:    domain.EventUserList,
		Payload: domain.RosterPayload{Users: h.roster.Names()},
	})

	h.replayHistory(req.Client)
	log.Printf("User %s joined (%d online)", payload.Nickname, h.roster.Len())
}

// reject terminates a session that never made it into the roster. The
// error event is queued before the channel closes, so the write pump
// still delivers it.
func (h *Hub) reject(client *Client, message string) {
	client.sendError(message)
	delete(h.clients, client)
	close(client.Send)
}

// handleRelay broadcasts one message to every member, sender included.
// Persistence failures are logged; the relay itself never fails.
func (h *Hub) handleRelay(client *Client, relay *RelayRequest) {
	if relay == nil {
		return
	}
	now := time.Now().In(h.location)

	stored := &domain.StoredMessage{
		Nickname:  client.Nickname,
		Content:   relay.Payload,
		Kind:      relay.Kind,
		Original:  relay.Original,
		Timestamp: now,
	}
	if err := h.messages.SaveMessage(context.Background(), stored); err != nil {
		log.Printf("Failed to store message from %s: %v", client.Nickname, err)
	}

	h.broadcast(domain.Event{
		Type: domain.EventMessage,
		Payload: domain.MessagePayload{
			Nickname:  client.Nickname,
			Kind:      relay.Kind,
			Payload:   relay.Payload,
			Original:  relay.Original,
			Timestamp: now,
		},
	})
}

// handleAssistantRequest forwards a trigger message to the assistant
// as a detached task. Only the final broadcast re-enters the
// sequencer; a failed or timed-out call is dropped silently.
func (h *Hub) handleAssistantRequest(req *ClientRequest) {
	if h.responder == nil {
		return
	}
	var payload domain.ChatPayload
	if err := parsePayload(req.Message.Payload, &payload); err != nil {
		return
	}
	query, ok := h.classifier.Query(payload.Msg)
	if !ok {
		log.Printf("Ignoring ai_request without trigger from %s", req.Client.Nickname)
		return
	}

	go func(original string) {
		ctx, cancel := context.WithTimeout(context.Background(), h.assistantTimeout)
		defer cancel()
		reply, err := h.responder.Reply(ctx, query)
		if err != nil {
			log.Printf("%v: %v", service.ErrAssistantUnavailable, err)
			return
		}
		h.replies <- assistantReply{original: original, reply: reply}
	}(payload.Msg)
}

func (h *Hub) deliverReply(reply assistantReply) {
	now := time.Now().In(h.location)

	stored := &domain.StoredMessage{
		Nickname:  h.assistantName,
		Content:   reply.reply,
		Kind:      domain.KindAI,
		Original:  reply.original,
		Timestamp: now,
	}
	if err := h.messages.SaveMessage(context.Background(), stored); err != nil {
		log.Printf("Failed to store assistant reply: %v", err)
	}

	h.broadcast(domain.Event{
		Type: domain.EventMessage,
		Payload: domain.MessagePayload{
			Nickname:  h.assistantName,
			Kind:      domain.KindAI,
			Payload:   reply.reply,
			Original:  reply.original,
			Timestamp: now,
		},
	})
}

// replayHistory sends the stored tail of the room to a new member only.
func (h *Hub) replayHistory(client *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := h.messages.RecentMessages(ctx, h.historyLimit)
	if err != nil {
		log.Printf("Failed to load history for %s: %v", client.Nickname, err)
		return
	}
	for _, msg := range messages {
		client.enqueue(domain.Event{
			Type: domain.EventMessage,
			Payload: domain.MessagePayload{
				Nickname:  msg.Nickname,
				Kind:      msg.Kind,
				Payload:   msg.Content,
				Original:  msg.Original,
				Timestamp: msg.Timestamp,
			},
		})
	}
}

// broadcast delivers one event to every room member. Members whose
// send buffer is full are evicted through the normal leave path.
func (h *Hub) broadcast(ev domain.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal %s broadcast: %v", ev.Type, err)
		return
	}

	var stalled []*Client
	for _, member := range h.roster.Members() {
		select {
		case member.Send <- data:
		default:
			stalled = append(stalled, member)
		}
	}
	for _, member := range stalled {
		log.Printf("Evicting slow consumer %s", member.Nickname)
		h.dropClient(member)
	}
}
