package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// UserEssentials is the slice of a user a comment carries for rendering.
// The comment references it; it does not own the user.
type UserEssentials struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// Comment is one node of a post's comment tree.
//
// Replies is lazily populated: nil means the replies were never fetched,
// an empty non-nil slice means they were fetched and there are none.
// RepliesCount is the server-side total and may exceed len(Replies).
//
// Once a thread store holds a Comment, its Replies are only changed through
// commenttree.Apply, which copies instead of mutating.
type Comment struct {
	ID           string         `json:"id"`
	PostID       string         `json:"post_id"`
	Content      string         `json:"content"`
	CreatedBy    UserEssentials `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	AgreeCount   int            `json:"agree_count"`
	IsAgreed     bool           `json:"is_agreed"`
	IsDisagreed  bool           `json:"is_disagreed"`
	Parent       *string        `json:"parent"`
	RepliesCount int            `json:"replies_count"`
	Replies      []*Comment     `json:"replies,omitempty"`
}

// CreateCommentRequest is the body of a comment or reply submission.
//
// ClientID is optional. When the client sets it, a retried submission
// resolves to the same comment instead of creating a second one.
type CreateCommentRequest struct {
	Content  string `json:"content"`
	ClientID string `json:"client_id,omitempty"`
}

// Validate checks the request and trims the content in place.
func (r *CreateCommentRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	contentLen := utf8.RuneCountInString(r.Content)

	if contentLen < 1 {
		return fmt.Errorf("comment content is required")
	}
	if contentLen > 4000 {
		return fmt.Errorf("comment content must be at most 4000 characters")
	}
	if len(r.ClientID) > 64 {
		return fmt.Errorf("client_id must be at most 64 characters")
	}
	return nil
}
