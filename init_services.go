// Service layer setup.

package main

import (
	"github.com/akinalp/sphere/config"
	"github.com/akinalp/sphere/pkg/ratelimit"
	"github.com/akinalp/sphere/services"
)

// Services groups every service.
type Services struct {
	Auth    services.AuthService
	Comment services.CommentService
	Chat    services.ChatService
}

// RateLimiters groups the in-memory limiters.
type RateLimiters struct {
	Login  *ratelimit.LoginRateLimiter
	Submit *ratelimit.SubmitRateLimiter
}

// Caches groups the TTL caches backing the in-memory stores.
type Caches struct {
	Threads  *services.ThreadCache
	Sessions *services.SessionCache
}

// Close stops every background sweep.
func (l *RateLimiters) Close() {
	l.Login.Close()
	l.Submit.Close()
}

func (c *Caches) Close() {
	c.Threads.Close()
	c.Sessions.Close()
}

// initServices builds the services together with the caches and limiters
// they and the handlers need. The caller closes both on shutdown.
func initServices(repos *Repositories, cfg *config.Config) (*Services, *Caches, *RateLimiters) {
	caches := &Caches{
		Threads:  services.NewThreadCache(cfg.Cache.ThreadTTL, cfg.Cache.CleanupInterval),
		Sessions: services.NewSessionCache(cfg.Cache.ChatSessionTTL, cfg.Cache.CleanupInterval),
	}

	svcs := &Services{
		Auth:    services.NewAuthService(repos.User, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry),
		Comment: services.NewCommentService(repos.Comment, caches.Threads),
		Chat:    services.NewChatService(repos.Chat, repos.User, caches.Sessions),
	}

	limiters := &RateLimiters{
		Login: ratelimit.NewLoginRateLimiter(cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow),
		Submit: ratelimit.NewSubmitRateLimiter(
			cfg.RateLimit.SubmitMax,
			cfg.RateLimit.SubmitWindow,
			cfg.RateLimit.SubmitCooldown,
		),
	}

	return svcs, caches, limiters
}
