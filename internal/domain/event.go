package domain

import "time"

// Event is the standard envelope for every frame exchanged over the
// chat WebSocket, in both directions.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client -> server event types.
const (
	EventJoin      = "join"
	EventMessage   = "message"
	EventAIRequest = "ai_request"
)

// Server -> client event types.
const (
	EventUserList   = "user_list"
	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
	EventError      = "error"
)

// MessageKind classifies a relayed chat message.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindMovie MessageKind = "movie"
	KindAI    MessageKind = "ai"
)

// JoinPayload is the payload of a 'join' request.
type JoinPayload struct {
	Nickname string `json:"nickname"`
}

// ChatPayload is the payload of 'message' and 'ai_request' requests.
type ChatPayload struct {
	Msg string `json:"msg"`
}

// RosterPayload is the payload of 'user_list', sent to a freshly
// joined client.
type RosterPayload struct {
	Users []string `json:"users"`
}

// PresencePayload is the payload of 'user_joined' and 'user_left'.
// Users always carries the complete roster after the change, never a
// delta, so a client that missed an event converges on the next one.
type PresencePayload struct {
	Nickname string   `json:"nickname"`
	Users    []string `json:"users"`
}

// MessagePayload is the payload of a relayed 'message' event.
type MessagePayload struct {
	Nickname  string      `json:"nickname"`
	Kind      MessageKind `json:"type"`
	Payload   string      `json:"payload"`
	Original  string      `json:"original_msg"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorPayload is the payload of an 'error' event. Channel errors are
// fatal for the session; the client is expected to leave.
type ErrorPayload struct {
	Message string `json:"message"`
}
