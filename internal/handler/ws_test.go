package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/hub"
)

type memRepo struct {
	saved []*domain.StoredMessage
}

func (m *memRepo) SaveMessage(_ context.Context, message *domain.StoredMessage) error {
	m.saved = append(m.saved, message)
	return nil
}

func (m *memRepo) RecentMessages(context.Context, int64) ([]*domain.StoredMessage, error) {
	return nil, nil
}

func (m *memRepo) PurgeMessages(context.Context) error { return nil }

func dialChat(t *testing.T, serverURL, nickname string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.WriteJSON(domain.Event{
		Type:    domain.EventJoin,
		Payload: domain.JoinPayload{Nickname: nickname},
	}))
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev domain.Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestWebsocketRoundTrip(t *testing.T) {
	h := hub.NewHub(hub.Options{
		AssistantName: "bot",
		Classifier:    hub.NewClassifier("bot", "@movie", "https://embed/?url=", nil),
		Messages:      &memRepo{},
	})
	go h.Run()

	server := httptest.NewServer(newTestMux(h))
	defer server.Close()

	alice := dialChat(t, server.URL, "alice")
	ev := readEvent(t, alice)
	assert.Equal(t, domain.EventUserJoined, ev.Type)
	ev = readEvent(t, alice)
	assert.Equal(t, domain.EventUserList, ev.Type)

	bob := dialChat(t, server.URL, "bob")
	ev = readEvent(t, bob) // bob's own user_joined
	assert.Equal(t, domain.EventUserJoined, ev.Type)
	readEvent(t, bob) // user_list
	ev = readEvent(t, alice)
	assert.Equal(t, domain.EventUserJoined, ev.Type)

	require.NoError(t, bob.WriteJSON(domain.Event{
		Type:    domain.EventMessage,
		Payload: domain.ChatPayload{Msg: "hello"},
	}))

	for _, conn := range []*websocket.Conn{alice, bob} {
		ev = readEvent(t, conn)
		require.Equal(t, domain.EventMessage, ev.Type)
		payload, ok := ev.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "bob", payload["nickname"])
		assert.Equal(t, "hello", payload["payload"])
	}
}

func TestWebsocketDuplicateNicknameClosesSession(t *testing.T) {
	h := hub.NewHub(hub.Options{
		AssistantName: "bot",
		Classifier:    hub.NewClassifier("bot", "@movie", "https://embed/?url=", nil),
		Messages:      &memRepo{},
	})
	go h.Run()

	server := httptest.NewServer(newTestMux(h))
	defer server.Close()

	alice := dialChat(t, server.URL, "alice")
	readEvent(t, alice)
	readEvent(t, alice)

	impostor := dialChat(t, server.URL, "alice")
	ev := readEvent(t, impostor)
	require.Equal(t, domain.EventError, ev.Type)

	// The server closes the channel after the error.
	impostor.SetReadDeadline(time.Now().Add(2 * time.Second))
	var discard domain.Event
	assert.Error(t, impostor.ReadJSON(&discard))
}

func newTestMux(h *hub.Hub) *http.ServeMux {
	ws := NewWebsocketHandler(h)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.HandleConnection)
	return mux
}
