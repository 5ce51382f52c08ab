// Package middleware holds the wrappers that run before handlers.
//
// A middleware is a func(next http.Handler) http.Handler. It does its check
// and either calls next or writes the response itself.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akinalp/sphere/handlers"
	"github.com/akinalp/sphere/pkg"
	"github.com/akinalp/sphere/repository"
	"github.com/akinalp/sphere/services"
)

// AuthMiddleware checks the bearer token and loads the user.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
}

func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

// Require rejects the request with 401 unless it carries
// "Authorization: Bearer <token>" for an existing user. The user is put in
// the context under handlers.UserContextKey without its password hash.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// The token may outlive the account.
		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if errors.Is(err, pkg.ErrNotFound) {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
			return
		}
		if err != nil {
			pkg.Error(w, err)
			return
		}
		user.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
