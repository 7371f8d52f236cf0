package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins (development setting)
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler upgrades chat connections and hands them to the hub.
type WebsocketHandler struct {
	hub *hub.Hub
}

// NewWebsocketHandler creates a new WebsocketHandler.
func NewWebsocketHandler(h *hub.Hub) *WebsocketHandler {
	return &WebsocketHandler{hub: h}
}

// HandleConnection handles GET /ws. The client announces its nickname
// with a 'join' event after the upgrade.
func (h *WebsocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Upgrade error: %v", err)
		return
	}
	h.hub.ServeWs(conn)
}
