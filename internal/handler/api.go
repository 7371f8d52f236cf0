package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/config"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/service"
)

// Presence is the live-roster view the REST layer needs from the hub.
type Presence interface {
	Online() []string
	IsOnline(nickname string) bool
}

// APIHandler serves the REST collaborators of the chat client: server
// selection, nickname checks, accounts, and history management.
type APIHandler struct {
	cfg      *config.Config
	users    service.IUserService
	history  service.IHistoryService
	presence Presence
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(cfg *config.Config, users service.IUserService, history service.IHistoryService, presence Presence) *APIHandler {
	return &APIHandler{cfg: cfg, users: users, history: history, presence: presence}
}

type credentialsRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type nicknameResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Servers handles GET /api/servers.
func (h *APIHandler) Servers(w http.ResponseWriter, r *http.Request) {
	servers, err := h.cfg.LoadServers()
	if err != nil {
		log.Printf("Failed to load server list: %v", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Success: false, Message: "Failed to load server list."})
		return
	}
	writeJSON(w, http.StatusOK, servers)
}

// CheckNickname handles POST /api/check_nickname. Only the live
// roster is consulted, for immediate feedback on the login page.
func (h *APIHandler) CheckNickname(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, nicknameResponse{Valid: false, Message: "Invalid request body."})
		return
	}
	if req.Nickname == "" {
		writeJSON(w, http.StatusOK, nicknameResponse{Valid: false, Message: "Nickname cannot be empty"})
		return
	}
	if h.presence.IsOnline(req.Nickname) {
		writeJSON(w, http.StatusOK, nicknameResponse{Valid: false, Message: service.ErrDuplicateNickname.Error()})
		return
	}
	writeJSON(w, http.StatusOK, nicknameResponse{Valid: true})
}

// Register handles POST /register.
func (h *APIHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if _, err := h.users.Register(req.Nickname, req.Password); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrNicknameTaken) {
			status = http.StatusConflict
		}
		writeJSON(w, status, statusResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

// Login handles POST /login.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if _, err := h.users.Login(req.Nickname, req.Password); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, statusResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

// History handles GET /api/history.
func (h *APIHandler) History(w http.ResponseWriter, r *http.Request) {
	messages, err := h.history.Recent(r.Context(), h.cfg.HistoryLimit)
	if err != nil {
		log.Printf("Failed to load history: %v", err)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Success: false, Message: "Failed to load history."})
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// ClearHistory handles POST /clear_history.
func (h *APIHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, statusResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Chat history cleared."})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Success: false, Message: "Invalid request body."})
		return req, false
	}
	if req.Nickname == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, statusResponse{Success: false, Message: "Nickname and password are required."})
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
