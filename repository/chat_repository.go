//go:generate mockgen -destination=../services/mock_chat_repository_test.go -package=services -source=chat_repository.go

package repository

import (
	"context"

	"github.com/akinalp/sphere/models"
)

// ChatRepository stores direct messages.
type ChatRepository interface {
	// ListForUser returns every message userID sent or received, oldest
	// first.
	ListForUser(ctx context.Context, userID string) ([]models.ChatMessage, error)
	// Create stores msg as is; the id and timestamp come from the caller.
	Create(ctx context.Context, msg *models.ChatMessage) error
	// MarkRead sets read on the given messages addressed to receiverID and
	// returns how many rows changed. Other ids are ignored.
	MarkRead(ctx context.Context, receiverID string, ids []string) (int, error)
}
