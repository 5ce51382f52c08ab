package models

import (
	"strings"
	"time"
)

// ChatMessage is a direct message between two users.
// Everything is immutable except Read, which only ever goes false → true.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}

// Conversation is derived from the message list and never stored.
// LastMessage is nil for a conversation created before its first message.
type Conversation struct {
	ID           string       `json:"id"`
	Participants [2]string    `json:"participants"`
	LastMessage  *ChatMessage `json:"last_message"`
	UnreadCount  int          `json:"unread_count"`
}

// OtherParticipant returns the participant who is not userID.
// For a conversation with yourself it returns userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.Participants[0] == userID {
		return c.Participants[1]
	}
	return c.Participants[0]
}

// conversationPrefix starts every conversation id.
const conversationPrefix = "conv_"

// SortUserIDs returns the two ids in ascending order.
func SortUserIDs(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// ConversationID maps a pair of users to their conversation id.
// The pair is sorted first, so A→B and B→A land in the same conversation.
func ConversationID(a, b string) string {
	first, second := SortUserIDs(a, b)
	return conversationPrefix + first + "_" + second
}

// ConversationIDOf returns the conversation a message belongs to.
func ConversationIDOf(m ChatMessage) string {
	return ConversationID(m.SenderID, m.ReceiverID)
}

// IsConversationID reports whether id has the conversation id shape.
func IsConversationID(id string) bool {
	return strings.HasPrefix(id, conversationPrefix) && len(id) > len(conversationPrefix)
}

// SendChatMessageRequest is the body of POST /api/chat/messages.
type SendChatMessageRequest struct {
	Text string `json:"text"`
}

// StartConversationRequest is the body of POST /api/chat/conversations.
type StartConversationRequest struct {
	UserID string `json:"user_id"`
}
