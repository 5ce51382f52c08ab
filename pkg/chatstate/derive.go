package chatstate

import (
	"sort"

	"github.com/akinalp/sphere/models"
)

// Derive builds the conversation list for currentUserID from a flat message
// list. It is pure: the same inputs always give the same output.
//
//   - Messages are grouped by models.ConversationIDOf.
//   - LastMessage is the message with the greatest timestamp; on a tie the
//     one later in the slice wins.
//   - UnreadCount counts messages not sent by currentUserID with Read=false.
//   - Conversations are ordered by LastMessage timestamp, newest first;
//     equal timestamps keep first-appearance order.
//   - placeholders without any message follow, in the order given.
func Derive(currentUserID string, messages []models.ChatMessage, placeholders []models.Conversation) []models.Conversation {
	groups := make(map[string]*models.Conversation)
	order := make([]string, 0)

	for i := range messages {
		m := messages[i]
		id := models.ConversationIDOf(m)

		conv, ok := groups[id]
		if !ok {
			first, second := models.SortUserIDs(m.SenderID, m.ReceiverID)
			conv = &models.Conversation{
				ID:           id,
				Participants: [2]string{first, second},
			}
			groups[id] = conv
			order = append(order, id)
		}

		if conv.LastMessage == nil || !m.Timestamp.Before(conv.LastMessage.Timestamp) {
			conv.LastMessage = &m
		}
		if m.SenderID != currentUserID && !m.Read {
			conv.UnreadCount++
		}
	}

	out := make([]models.Conversation, 0, len(order)+len(placeholders))
	for _, id := range order {
		out = append(out, *groups[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessage.Timestamp.After(out[j].LastMessage.Timestamp)
	})

	for _, p := range placeholders {
		if _, ok := groups[p.ID]; ok {
			continue
		}
		out = append(out, models.Conversation{
			ID:           p.ID,
			Participants: p.Participants,
		})
	}

	return out
}

// messagesIn returns the messages of one conversation, oldest first.
// Equal timestamps keep insertion order.
func messagesIn(conversationID string, messages []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, 0)
	for _, m := range messages {
		if models.ConversationIDOf(m) == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
