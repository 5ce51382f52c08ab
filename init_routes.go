// HTTP route registration.

package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akinalp/sphere/middleware"
	"github.com/akinalp/sphere/repository"
	"github.com/akinalp/sphere/services"
)

// initRoutes wires the middleware chain and registers every endpoint.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(handler)
	}

	// ─── Public ───
	mux.HandleFunc("GET /api/health", h.Health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// ─── User ───
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))

	// ─── Comments ───
	mux.Handle("GET /api/posts/{postId}/comments", auth(h.Comment.GetThread))
	mux.Handle("POST /api/posts/{postId}/comments", auth(h.Comment.AddComment))
	mux.Handle("GET /api/posts/{postId}/comments/{commentId}/replies", auth(h.Comment.LoadReplies))
	mux.Handle("POST /api/posts/{postId}/comments/{commentId}/replies", auth(h.Comment.AddReply))

	// ─── Chat ───
	mux.Handle("GET /api/chat", auth(h.Chat.View))
	mux.Handle("POST /api/chat/conversations", auth(h.Chat.StartConversation))
	mux.Handle("POST /api/chat/conversations/{conversationId}/select", auth(h.Chat.Select))
	mux.Handle("POST /api/chat/conversations/{conversationId}/read", auth(h.Chat.MarkRead))
	mux.Handle("POST /api/chat/messages", auth(h.Chat.SendMessage))
}
