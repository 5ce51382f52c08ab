package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akinalp/sphere/models"
	"github.com/akinalp/sphere/pkg"
	"github.com/akinalp/sphere/pkg/cache"
	"github.com/akinalp/sphere/pkg/commenttree"
	"github.com/akinalp/sphere/pkg/metrics"
	"github.com/akinalp/sphere/repository"
)

//go:generate mockgen -destination=../handlers/mock_comment_service_test.go -package=handlers -source=comment_service.go

// CommentService owns the thread stores: one comment forest per viewer and
// post, as that viewer has loaded it. Every change to a forest goes through
// commenttree.Apply, so handlers can hand out forests without copying.
type CommentService interface {
	// GetThread returns the viewer's forest for postID, loading the
	// top-level comments on first use.
	GetThread(ctx context.Context, viewer *models.User, postID string) ([]*models.Comment, error)
	// LoadReplies fetches one page of replies to commentID and installs it
	// as that comment's reply list.
	LoadReplies(ctx context.Context, viewer *models.User, postID, commentID string, limit, offset int) ([]*models.Comment, error)
	// AddComment stores a top-level comment and appends it to the forest.
	AddComment(ctx context.Context, author *models.User, postID string, req *models.CreateCommentRequest) (*CommentResult, error)
	// AddReply stores a reply to parentID and appends it under the parent.
	AddReply(ctx context.Context, author *models.User, postID, parentID string, req *models.CreateCommentRequest) (*CommentResult, error)
}

// CommentResult is the stored comment and the forest after the edit.
// Duplicate is set when the comment was already in the forest, which
// happens when a submission is retried with the same client id.
type CommentResult struct {
	Comment   *models.Comment   `json:"comment"`
	Thread    []*models.Comment `json:"thread"`
	Duplicate bool              `json:"duplicate"`
}

// MaxRepliesPage bounds LoadReplies' limit.
const MaxRepliesPage = 100

// ThreadKey identifies one viewer's forest of one post.
type ThreadKey struct {
	ViewerID string
	PostID   string
}

// ThreadCache holds the forests.
type ThreadCache = cache.TTLCache[ThreadKey, []*models.Comment]

type commentService struct {
	commentRepo repository.CommentRepository
	threads     *ThreadCache
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	threads *ThreadCache,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		threads:     threads,
	}
}

// NewThreadCache builds the cache NewCommentService expects. Close it on
// shutdown.
func NewThreadCache(ttl, cleanupInterval time.Duration) *ThreadCache {
	return cache.New[ThreadKey, []*models.Comment](ttl, cleanupInterval)
}

func (s *commentService) GetThread(ctx context.Context, viewer *models.User, postID string) ([]*models.Comment, error) {
	return s.thread(ctx, ThreadKey{ViewerID: viewer.ID, PostID: postID})
}

func (s *commentService) LoadReplies(ctx context.Context, viewer *models.User, postID, commentID string, limit, offset int) ([]*models.Comment, error) {
	if limit <= 0 || limit > MaxRepliesPage {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", pkg.ErrBadRequest, MaxRepliesPage)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", pkg.ErrBadRequest)
	}

	key := ThreadKey{ViewerID: viewer.ID, PostID: postID}
	base, err := s.thread(ctx, key)
	if err != nil {
		return nil, err
	}
	if commenttree.Find(base, commentID) == nil {
		metrics.TreeEditsTotal.WithLabelValues(commenttree.ModeReplace.String(), "not_found").Inc()
		return nil, fmt.Errorf("%w: %s", commenttree.ErrNotFound, commentID)
	}

	page, err := s.commentRepo.ListReplies(ctx, postID, commentID, viewer.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	forest, err := s.threads.Update(key, func(current []*models.Comment, ok bool) ([]*models.Comment, error) {
		if !ok {
			current = base
		}
		out, err := commenttree.Apply(current, commentID, page, commenttree.ModeReplace)
		s.recordEdit(commenttree.ModeReplace, err)
		return out, err
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("component", "comments").
		Str("post_id", postID).
		Str("comment_id", commentID).
		Int("page", len(page)).
		Int("loaded", countLoaded(forest)).
		Msg("replies loaded")

	return forest, nil
}

func (s *commentService) AddComment(ctx context.Context, author *models.User, postID string, req *models.CreateCommentRequest) (*CommentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	key := ThreadKey{ViewerID: author.ID, PostID: postID}
	base, err := s.thread(ctx, key)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Create(ctx, &models.Comment{
		PostID:    postID,
		Content:   req.Content,
		CreatedBy: author.Essentials(),
	}, req.ClientID)
	if err != nil {
		return nil, err
	}
	if err := checkPlacement(comment, postID, nil); err != nil {
		return nil, err
	}

	duplicate := false
	forest, err := s.threads.Update(key, func(current []*models.Comment, ok bool) ([]*models.Comment, error) {
		if !ok {
			current = base
		}
		for _, c := range current {
			if c.ID == comment.ID {
				duplicate = true
				return current, nil
			}
		}
		out := make([]*models.Comment, len(current), len(current)+1)
		copy(out, current)
		return append(out, comment), nil
	})
	if err != nil {
		return nil, err
	}

	if !duplicate {
		metrics.CommentsCreatedTotal.WithLabelValues("top_level").Inc()
	}

	return &CommentResult{Comment: comment, Thread: forest, Duplicate: duplicate}, nil
}

func (s *commentService) AddReply(ctx context.Context, author *models.User, postID, parentID string, req *models.CreateCommentRequest) (*CommentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	key := ThreadKey{ViewerID: author.ID, PostID: postID}
	base, err := s.thread(ctx, key)
	if err != nil {
		return nil, err
	}

	// Nothing is written for a parent the viewer has not loaded.
	if commenttree.Find(base, parentID) == nil {
		metrics.TreeEditsTotal.WithLabelValues(commenttree.ModeAdd.String(), "not_found").Inc()
		return nil, fmt.Errorf("%w: %s", commenttree.ErrNotFound, parentID)
	}

	reply, err := s.commentRepo.Create(ctx, &models.Comment{
		PostID:    postID,
		Content:   req.Content,
		CreatedBy: author.Essentials(),
		Parent:    &parentID,
	}, req.ClientID)
	if err != nil {
		return nil, err
	}
	if err := checkPlacement(reply, postID, &parentID); err != nil {
		return nil, err
	}

	duplicate := false
	forest, err := s.threads.Update(key, func(current []*models.Comment, ok bool) ([]*models.Comment, error) {
		if !ok {
			current = base
		}
		out, err := commenttree.Apply(current, parentID, []*models.Comment{reply}, commenttree.ModeAdd)
		s.recordEdit(commenttree.ModeAdd, err)

		if errors.Is(err, commenttree.ErrDuplicateReply) {
			log.Warn().Str("component", "comments").
				Str("post_id", postID).
				Str("parent_id", parentID).
				Str("reply_id", reply.ID).
				Msg("reply already in thread, ignoring")
			duplicate = true
			return current, nil
		}
		return out, err
	})
	if err != nil {
		// The reply is stored but the forest changed under it, so drop the
		// forest and let the next read rebuild it from the database.
		s.threads.Delete(key)
		log.Warn().Err(err).Str("component", "comments").
			Str("post_id", postID).
			Str("parent_id", parentID).
			Str("reply_id", reply.ID).
			Msg("stored reply not applied, thread dropped")
		return nil, err
	}

	if !duplicate {
		metrics.CommentsCreatedTotal.WithLabelValues("reply").Inc()
	}

	return &CommentResult{Comment: reply, Thread: forest, Duplicate: duplicate}, nil
}

// ─── Private Helpers ───

// thread returns the cached forest for key, loading top-level comments on
// a miss. The query runs outside the cache lock; if two requests race, the
// first stored forest wins.
func (s *commentService) thread(ctx context.Context, key ThreadKey) ([]*models.Comment, error) {
	if forest, ok := s.threads.Get(key); ok {
		return forest, nil
	}

	loaded, err := s.commentRepo.ListTopLevel(ctx, key.PostID, key.ViewerID)
	if err != nil {
		return nil, err
	}

	return s.threads.Update(key, func(current []*models.Comment, ok bool) ([]*models.Comment, error) {
		if ok {
			return current, nil
		}
		return loaded, nil
	})
}

// checkPlacement rejects a stored comment that is not where the request put
// it. The repository returns an earlier row for a reused client id, and
// that row may belong to another post or parent.
func checkPlacement(c *models.Comment, postID string, parentID *string) error {
	samePlace := c.PostID == postID
	switch {
	case parentID == nil:
		samePlace = samePlace && c.Parent == nil
	default:
		samePlace = samePlace && c.Parent != nil && *c.Parent == *parentID
	}
	if !samePlace {
		return fmt.Errorf("%w: client id belongs to comment %s", pkg.ErrAlreadyExists, c.ID)
	}
	return nil
}

func (s *commentService) recordEdit(mode commenttree.Mode, err error) {
	metrics.TreeEditsTotal.WithLabelValues(mode.String(), commenttree.Outcome(err)).Inc()
}

func countLoaded(forest []*models.Comment) int {
	n := 0
	commenttree.Walk(forest, func(*models.Comment, int) bool {
		n++
		return true
	})
	return n
}
