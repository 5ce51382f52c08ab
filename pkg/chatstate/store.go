// Package chatstate keeps one user's direct-message state: the flat message
// list, the conversations derived from it and the selected conversation.
//
// Every mutation recomputes the derived view before it returns, so a reader
// never sees a LastMessage or UnreadCount that lags the message list.
// Observers registered with Subscribe get the fresh View after each
// mutation, outside the store's lock.
package chatstate

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/sphere/models"
)

// View is a snapshot of the store. It is a copy; changing it does not
// affect the store.
type View struct {
	CurrentUserID string                `json:"current_user_id"`
	Conversations []models.Conversation `json:"conversations"`
	SelectedID    string                `json:"selected_conversation_id,omitempty"`
	Messages      []models.ChatMessage  `json:"messages"`
}

// Store owns allMessages and the selection for a single current user.
type Store struct {
	mu sync.Mutex

	currentUserID string
	messages      []models.ChatMessage
	index         map[string]int

	// placeholders are conversations created before their first message,
	// kept in creation order.
	placeholders []models.Conversation

	selectedID string
	// selectionMade turns off the initial auto-selection for good, even if
	// the selected conversation later has no messages.
	selectionMade bool

	conversations []models.Conversation
	selected      []models.ChatMessage

	now   func() time.Time
	newID func() string

	observers    map[int]func(View)
	nextObserver int
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for sent messages.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the id source used for sent messages.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty store for currentUserID.
func New(currentUserID string, opts ...Option) *Store {
	s := &Store{
		currentUserID: currentUserID,
		index:         make(map[string]int),
		now:           time.Now,
		newID:         uuid.NewString,
		observers:     make(map[int]func(View)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recomputeLocked()
	return s
}

// View returns a snapshot of the current state.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Subscribe registers fn to receive the View after every mutation.
// The returned func removes it.
func (s *Store) Subscribe(fn func(View)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// SelectConversation selects id and marks its unread messages read.
// It returns the ids of the messages it flipped. ok is false, and nothing
// changes, when no conversation with that id exists.
func (s *Store) SelectConversation(id string) (flipped []string, ok bool) {
	s.mutate(func() bool {
		if !s.hasConversationLocked(id) {
			return false
		}
		s.selectedID = id
		s.selectionMade = true
		flipped = s.markReadLocked(id)
		ok = true
		return true
	})
	return flipped, ok
}

// SendMessage appends a message from the current user to the other
// participant of the selected conversation. It is a no-op returning false
// when nothing is selected or text has no non-whitespace character.
func (s *Store) SendMessage(text string) (msg models.ChatMessage, ok bool) {
	s.mutate(func() bool {
		if strings.TrimSpace(text) == "" {
			return false
		}
		conv, found := s.selectedConversationLocked()
		if !found {
			return false
		}

		msg = models.ChatMessage{
			ID:         s.newID(),
			SenderID:   s.currentUserID,
			ReceiverID: conv.OtherParticipant(s.currentUserID),
			Text:       text,
			Timestamp:  s.now(),
			Read:       false,
		}
		s.appendLocked(msg)
		ok = true
		return true
	})
	return msg, ok
}

// Retract removes a message the current user sent, typically one whose
// delivery failed after SendMessage added it. A placeholder conversation
// comes back empty once its only message is gone. It reports whether a
// message was removed.
func (s *Store) Retract(id string) bool {
	removed := false
	s.mutate(func() bool {
		i, ok := s.index[id]
		if !ok || s.messages[i].SenderID != s.currentUserID {
			return false
		}
		s.messages = append(s.messages[:i], s.messages[i+1:]...)
		delete(s.index, id)
		for j := i; j < len(s.messages); j++ {
			s.index[s.messages[j].ID] = j
		}
		removed = true
		return true
	})
	return removed
}

// CreateNewConversation selects the conversation with otherUserID and
// returns its id. If it does not exist yet an empty placeholder is
// registered; calling again never creates a second one.
func (s *Store) CreateNewConversation(otherUserID string) string {
	id := models.ConversationID(s.currentUserID, otherUserID)

	s.mutate(func() bool {
		if !s.hasConversationLocked(id) {
			first, second := models.SortUserIDs(s.currentUserID, otherUserID)
			s.placeholders = append(s.placeholders, models.Conversation{
				ID:           id,
				Participants: [2]string{first, second},
			})
		}
		s.selectedID = id
		s.selectionMade = true
		return true
	})
	return id
}

// MarkConversationAsRead marks every message in id addressed to the
// current user as read. Messages the current user sent are left alone.
// Calling it again is harmless. It returns the ids it flipped.
func (s *Store) MarkConversationAsRead(id string) []string {
	var flipped []string
	s.mutate(func() bool {
		flipped = s.markReadLocked(id)
		return len(flipped) > 0
	})
	return flipped
}

// Ingest merges messages fetched from elsewhere (polling the backing
// repository). Unknown messages are appended in the given order; a known
// message can only have Read raised to true. Messages that do not involve
// the current user are ignored. It returns how many messages were new.
func (s *Store) Ingest(msgs ...models.ChatMessage) int {
	added := 0
	s.mutate(func() bool {
		changed := false
		for _, m := range msgs {
			if m.SenderID != s.currentUserID && m.ReceiverID != s.currentUserID {
				continue
			}
			if i, known := s.index[m.ID]; known {
				if m.Read && !s.messages[i].Read {
					s.messages[i].Read = true
					changed = true
				}
				continue
			}
			s.appendLocked(m)
			added++
			changed = true
		}
		return changed
	})
	return added
}

// ─── internals ───

// mutate runs fn under the lock. When fn reports a change, the derived
// state is recomputed before the lock is released and observers are
// notified afterwards.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	s.recomputeLocked()
	view := s.viewLocked()
	observers := make([]func(View), 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o(view)
	}
}

func (s *Store) recomputeLocked() {
	s.conversations = Derive(s.currentUserID, s.messages, s.placeholders)

	if !s.selectionMade && s.selectedID == "" && len(s.conversations) > 0 {
		s.selectedID = s.conversations[0].ID
		s.selectionMade = true
	}

	if s.selectedID == "" {
		s.selected = nil
		return
	}
	s.selected = messagesIn(s.selectedID, s.messages)
}

func (s *Store) viewLocked() View {
	convs := make([]models.Conversation, len(s.conversations))
	copy(convs, s.conversations)

	msgs := make([]models.ChatMessage, len(s.selected))
	copy(msgs, s.selected)

	return View{
		CurrentUserID: s.currentUserID,
		Conversations: convs,
		SelectedID:    s.selectedID,
		Messages:      msgs,
	}
}

func (s *Store) appendLocked(m models.ChatMessage) {
	s.index[m.ID] = len(s.messages)
	s.messages = append(s.messages, m)
}

func (s *Store) markReadLocked(conversationID string) []string {
	var flipped []string
	for i := range s.messages {
		m := &s.messages[i]
		if m.Read || m.ReceiverID != s.currentUserID {
			continue
		}
		if models.ConversationIDOf(*m) != conversationID {
			continue
		}
		m.Read = true
		flipped = append(flipped, m.ID)
	}
	return flipped
}

func (s *Store) hasConversationLocked(id string) bool {
	for _, c := range s.conversations {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) selectedConversationLocked() (models.Conversation, bool) {
	if s.selectedID == "" {
		return models.Conversation{}, false
	}
	for _, c := range s.conversations {
		if c.ID == s.selectedID {
			return c, true
		}
	}
	return models.Conversation{}, false
}
