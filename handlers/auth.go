// Package handlers turns HTTP requests into service calls.
//
// Handlers stay thin: decode the body, read path and query values, call one
// service method and write the envelope from pkg. No business rules and no
// SQL live here.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/sphere/models"
	"github.com/akinalp/sphere/pkg"
	"github.com/akinalp/sphere/pkg/metrics"
	"github.com/akinalp/sphere/pkg/ratelimit"
	"github.com/akinalp/sphere/services"
)

// AuthHandler serves registration, login and the current user.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAuthHandler builds an AuthHandler. A nil loginLimiter disables login
// throttling.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// Register godoc
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, result)
}

// Login godoc
// POST /api/auth/login
//
// Attempts are counted per client IP. A successful login clears the count.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		metrics.RateLimitedTotal.WithLabelValues("login").Inc()
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			"too many login attempts, please try again in "+ratelimit.FormatRetryMessage(retryAfter))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, result)
}

// Me godoc
// GET /api/users/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	pkg.JSON(w, http.StatusOK, user)
}

type contextKey string

// UserContextKey carries the authenticated *models.User. AuthMiddleware
// sets it.
const UserContextKey contextKey = "user"

// currentUser reads the user set by the auth middleware and writes a 401
// when it is missing.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return nil, false
	}
	return user, true
}
