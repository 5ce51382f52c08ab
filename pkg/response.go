package pkg

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// APIResponse is the envelope every endpoint answers with.
// The client always reads the same shape: success flag, then data or error.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON writes a successful response.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, APIResponse{
		Success: true,
		Data:    data,
	})
}

// Error writes an error response. Domain errors are translated to the
// matching HTTP status; anything unknown becomes a 500 and is logged.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("component", "http").Msg("internal error")
	}

	write(w, status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// ErrorWithMessage writes an error response with a fixed message.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	write(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

func write(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus maps domain errors to HTTP status codes.
// errors.Is walks the wrap chain, so "%w: detail" errors match too.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
