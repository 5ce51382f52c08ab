// Handler layer setup.

package main

import (
	"database/sql"

	"github.com/akinalp/sphere/config"
	"github.com/akinalp/sphere/handlers"
)

// Handlers groups every HTTP handler.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Comment *handlers.CommentHandler
	Chat    *handlers.ChatHandler
	Health  *handlers.HealthHandler
}

func initHandlers(svcs *Services, limiters *RateLimiters, conn *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:    handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Comment: handlers.NewCommentHandler(svcs.Comment, limiters.Submit),
		Chat:    handlers.NewChatHandler(svcs.Chat, limiters.Submit),
		Health:  handlers.NewHealthHandler(conn, cfg.Log.ServiceName),
	}
}
