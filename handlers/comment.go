package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/sphere/models"
	"github.com/akinalp/sphere/pkg"
	"github.com/akinalp/sphere/pkg/ratelimit"
	"github.com/akinalp/sphere/services"
)

// DefaultRepliesPage is the replies page size when ?limit is absent.
const DefaultRepliesPage = 20

// CommentHandler serves a post's comment thread.
type CommentHandler struct {
	commentService services.CommentService
	submitLimiter  *ratelimit.SubmitRateLimiter
}

func NewCommentHandler(commentService services.CommentService, submitLimiter *ratelimit.SubmitRateLimiter) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		submitLimiter:  submitLimiter,
	}
}

// GetThread godoc
// GET /api/posts/{postId}/comments
func (h *CommentHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	forest, err := h.commentService.GetThread(r.Context(), user, r.PathValue("postId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, nonNil(forest))
}

// AddComment godoc
// POST /api/posts/{postId}/comments
//
// Throttled per user under the "comment" scope, like AddReply.
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if throttled(w, h.submitLimiter, scopeComment, user.ID) {
		return
	}

	result, err := h.commentService.AddComment(r.Context(), user, r.PathValue("postId"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.respondCreated(w, user.ID, result)
}

// LoadReplies godoc
// GET /api/posts/{postId}/comments/{commentId}/replies?limit=20&offset=0
//
// The fetched page replaces the comment's loaded replies. The response is
// the whole forest after the edit.
func (h *CommentHandler) LoadReplies(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit, ok := queryInt(w, r, "limit", DefaultRepliesPage)
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	forest, err := h.commentService.LoadReplies(r.Context(), user,
		r.PathValue("postId"), r.PathValue("commentId"), limit, offset)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, forest)
}

// AddReply godoc
// POST /api/posts/{postId}/comments/{commentId}/replies
//
// Throttled per user under the "comment" scope. A retried submission
// (same client_id) does not use up the budget, but during a cooldown it is
// refused like any other.
func (h *CommentHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if throttled(w, h.submitLimiter, scopeComment, user.ID) {
		return
	}

	result, err := h.commentService.AddReply(r.Context(), user,
		r.PathValue("postId"), r.PathValue("commentId"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	h.respondCreated(w, user.ID, result)
}

// ─── Private Helpers ───

// respondCreated writes 201 for a new comment and 200 for a retried one.
// A retry gets its submission back.
func (h *CommentHandler) respondCreated(w http.ResponseWriter, userID string, result *services.CommentResult) {
	if result.Duplicate {
		refund(h.submitLimiter, scopeComment, userID)
		pkg.JSON(w, http.StatusOK, result)
		return
	}
	pkg.JSON(w, http.StatusCreated, result)
}

// queryInt parses an integer query parameter, falling back to def when it
// is absent. A malformed value writes a 400.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return n, true
}

// nonNil keeps an empty thread encoded as [] instead of null.
func nonNil(forest []*models.Comment) []*models.Comment {
	if forest == nil {
		return []*models.Comment{}
	}
	return forest
}
