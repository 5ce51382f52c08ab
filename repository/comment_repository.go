//go:generate mockgen -destination=../services/mock_comment_repository_test.go -package=services -source=comment_repository.go

package repository

import (
	"context"

	"github.com/akinalp/sphere/models"
)

// CommentRepository stores comment trees. Returned comments never have
// Replies loaded; RepliesCount carries the stored total. viewerID fills
// the per-viewer reaction flags.
type CommentRepository interface {
	// ListTopLevel returns a post's top-level comments, oldest first.
	ListTopLevel(ctx context.Context, postID, viewerID string) ([]*models.Comment, error)
	// ListReplies returns one page of direct replies to parentID, oldest
	// first. It returns pkg.ErrNotFound when parentID is not a comment of
	// postID.
	ListReplies(ctx context.Context, postID, parentID, viewerID string, limit, offset int) ([]*models.Comment, error)
	GetByID(ctx context.Context, id, viewerID string) (*models.Comment, error)
	// Create stores comment (PostID, Content, CreatedBy.ID and Parent are
	// read) and returns the stored row. A non-empty clientID that the same
	// author already used returns the earlier comment instead of a new one.
	Create(ctx context.Context, comment *models.Comment, clientID string) (*models.Comment, error)
}
