package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/sphere/pkg"
	"github.com/akinalp/sphere/pkg/metrics"
	"github.com/akinalp/sphere/pkg/ratelimit"
)

// Rate limit scopes of the submit limiter. Top-level comments and replies
// share one budget.
const (
	scopeComment = "comment"
	scopeChat    = "chat"
)

// throttled records a submission for userID in scope. When the limiter
// refuses it, a 429 with Retry-After is written and true is returned.
func throttled(w http.ResponseWriter, limiter *ratelimit.SubmitRateLimiter, scope, userID string) bool {
	if limiter == nil || limiter.Allow(scope, userID) {
		return false
	}

	retryAfter := limiter.CooldownSeconds(scope, userID)
	metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
		"you are sending too fast, please wait "+ratelimit.FormatRetryMessage(retryAfter))
	return true
}

// refund gives back the submission recorded by throttled.
func refund(limiter *ratelimit.SubmitRateLimiter, scope, userID string) {
	if limiter != nil {
		limiter.Refund(scope, userID)
	}
}
