package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/sphere/models"
	"github.com/akinalp/sphere/pkg"
	"github.com/akinalp/sphere/pkg/chatstate"
	"github.com/akinalp/sphere/pkg/ratelimit"
	"github.com/akinalp/sphere/services"
)

// ChatHandler serves the current user's direct-message state. Every
// endpoint answers with the full chat view so the client can render
// from a single response.
type ChatHandler struct {
	chatService   services.ChatService
	submitLimiter *ratelimit.SubmitRateLimiter
}

func NewChatHandler(chatService services.ChatService, submitLimiter *ratelimit.SubmitRateLimiter) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		submitLimiter: submitLimiter,
	}
}

// SentMessage is the response of SendMessage.
type SentMessage struct {
	Message *models.ChatMessage `json:"message"`
	View    chatstate.View      `json:"view"`
}

// View godoc
// GET /api/chat
func (h *ChatHandler) View(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	view, err := h.chatService.View(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, view)
}

// StartConversation godoc
// POST /api/chat/conversations
// Body: { "user_id": "..." }
func (h *ChatHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.chatService.StartConversation(r.Context(), user.ID, req.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, view)
}

// Select godoc
// POST /api/chat/conversations/{conversationId}/select
func (h *ChatHandler) Select(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	view, err := h.chatService.SelectConversation(r.Context(), user.ID, r.PathValue("conversationId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, view)
}

// MarkRead godoc
// POST /api/chat/conversations/{conversationId}/read
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	view, err := h.chatService.MarkRead(r.Context(), user.ID, r.PathValue("conversationId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, view)
}

// SendMessage godoc
// POST /api/chat/messages
// Body: { "text": "..." }
//
// The message goes to the selected conversation. Throttled per user under
// the "chat" scope.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if throttled(w, h.submitLimiter, scopeChat, user.ID) {
		return
	}

	var req models.SendChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, view, err := h.chatService.SendMessage(r.Context(), user.ID, req.Text)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, SentMessage{Message: msg, View: view})
}
