package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akinalp/sphere/models"
	"github.com/akinalp/sphere/pkg"
	"github.com/akinalp/sphere/pkg/cache"
	"github.com/akinalp/sphere/pkg/chatstate"
	"github.com/akinalp/sphere/pkg/metrics"
	"github.com/akinalp/sphere/repository"
)

//go:generate mockgen -destination=../handlers/mock_chat_service_test.go -package=handlers -source=chat_service.go

// ChatService keeps one chatstate.Store per user. Each call first pulls the
// user's messages from the repository into the store, then applies the
// operation and persists what it changed.
type ChatService interface {
	View(ctx context.Context, userID string) (chatstate.View, error)
	// StartConversation selects the conversation with otherUserID, creating
	// an empty one if they have never talked.
	StartConversation(ctx context.Context, userID, otherUserID string) (chatstate.View, error)
	// SelectConversation selects conversationID and marks it read.
	SelectConversation(ctx context.Context, userID, conversationID string) (chatstate.View, error)
	MarkRead(ctx context.Context, userID, conversationID string) (chatstate.View, error)
	// SendMessage sends text to the selected conversation.
	SendMessage(ctx context.Context, userID, text string) (*models.ChatMessage, chatstate.View, error)
}

// SessionCache holds the per-user stores.
type SessionCache = cache.TTLCache[string, *chatstate.Store]

// NewSessionCache builds the cache NewChatService expects. Close it on
// shutdown.
func NewSessionCache(ttl, cleanupInterval time.Duration) *SessionCache {
	return cache.New[string, *chatstate.Store](ttl, cleanupInterval)
}

type chatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	sessions *SessionCache
	opts     []chatstate.Option
}

func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	sessions *SessionCache,
	opts ...chatstate.Option,
) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		sessions: sessions,
		opts:     opts,
	}
}

func (s *chatService) View(ctx context.Context, userID string) (chatstate.View, error) {
	store, err := s.session(ctx, userID)
	if err != nil {
		return chatstate.View{}, err
	}
	return store.View(), nil
}

func (s *chatService) StartConversation(ctx context.Context, userID, otherUserID string) (chatstate.View, error) {
	if otherUserID == "" {
		return chatstate.View{}, fmt.Errorf("%w: user_id is required", pkg.ErrBadRequest)
	}
	if otherUserID == userID {
		return chatstate.View{}, fmt.Errorf("%w: cannot start a conversation with yourself", pkg.ErrBadRequest)
	}
	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		return chatstate.View{}, err
	}

	store, err := s.session(ctx, userID)
	if err != nil {
		return chatstate.View{}, err
	}

	store.CreateNewConversation(otherUserID)
	return store.View(), nil
}

func (s *chatService) SelectConversation(ctx context.Context, userID, conversationID string) (chatstate.View, error) {
	store, err := s.session(ctx, userID)
	if err != nil {
		return chatstate.View{}, err
	}

	flipped, ok := store.SelectConversation(conversationID)
	if !ok {
		return chatstate.View{}, fmt.Errorf("%w: conversation %s", pkg.ErrNotFound, conversationID)
	}
	s.persistRead(ctx, userID, flipped)

	return store.View(), nil
}

func (s *chatService) MarkRead(ctx context.Context, userID, conversationID string) (chatstate.View, error) {
	store, err := s.session(ctx, userID)
	if err != nil {
		return chatstate.View{}, err
	}

	s.persistRead(ctx, userID, store.MarkConversationAsRead(conversationID))
	return store.View(), nil
}

func (s *chatService) SendMessage(ctx context.Context, userID, text string) (*models.ChatMessage, chatstate.View, error) {
	store, err := s.session(ctx, userID)
	if err != nil {
		return nil, chatstate.View{}, err
	}

	msg, ok := store.SendMessage(text)
	if !ok {
		return nil, chatstate.View{}, fmt.Errorf("%w: select a conversation and enter a message", pkg.ErrBadRequest)
	}

	// The store shows the message before the insert; it is taken back out
	// when the insert fails, so a retry does not leave two copies.
	if err := s.chatRepo.Create(ctx, &msg); err != nil {
		store.Retract(msg.ID)
		log.Error().Err(err).Str("component", "chat").
			Str("user_id", userID).
			Str("message_id", msg.ID).
			Msg("failed to persist message")
		return nil, chatstate.View{}, fmt.Errorf("%w: message not saved", pkg.ErrInternal)
	}
	metrics.ChatMessagesSentTotal.Inc()

	return &msg, store.View(), nil
}

// ─── Private Helpers ───

// session returns the user's store, refreshed from the repository.
func (s *chatService) session(ctx context.Context, userID string) (*chatstate.Store, error) {
	store := s.sessions.GetOrCreate(userID, func() *chatstate.Store {
		return s.newStore(userID)
	})
	metrics.ChatSessions.Set(float64(s.sessions.Len()))

	messages, err := s.chatRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if added := store.Ingest(messages...); added > 0 {
		log.Debug().Str("component", "chat").Str("user_id", userID).Int("added", added).Msg("messages ingested")
	}

	return store, nil
}

func (s *chatService) newStore(userID string) *chatstate.Store {
	store := chatstate.New(userID, s.opts...)
	store.Subscribe(func(v chatstate.View) {
		unread := 0
		for _, c := range v.Conversations {
			unread += c.UnreadCount
		}
		log.Debug().Str("component", "chat").
			Str("user_id", userID).
			Int("conversations", len(v.Conversations)).
			Int("unread", unread).
			Str("selected", v.SelectedID).
			Msg("chat state changed")
	})
	return store
}

// persistRead writes read flips. A failure is logged and not returned:
// the flip holds for this session and Ingest never lowers it.
func (s *chatService) persistRead(ctx context.Context, userID string, ids []string) {
	if len(ids) == 0 {
		return
	}
	n, err := s.chatRepo.MarkRead(ctx, userID, ids)
	if err != nil {
		log.Error().Err(err).Str("component", "chat").
			Str("user_id", userID).
			Int("messages", len(ids)).
			Msg("failed to persist read state")
		return
	}
	metrics.ChatMessagesReadTotal.Add(float64(n))
}
