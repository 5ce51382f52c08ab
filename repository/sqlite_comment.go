package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/sphere/database"
	"github.com/akinalp/sphere/models"
	"github.com/akinalp/sphere/pkg"
)

type sqliteCommentRepo struct {
	db database.TxQuerier
}

func NewSQLiteCommentRepo(db database.TxQuerier) CommentRepository {
	return &sqliteCommentRepo{db: db}
}

// commentSelect returns comments with their author, reply total, agree
// total and the viewer's own reaction (1 agree, 0 disagree, -1 none).
// The first placeholder is the viewer id.
const commentSelect = `
	SELECT c.id, c.post_id, c.content, c.parent_id, c.created_at, c.updated_at,
	       u.id, u.username, u.display_name, u.avatar_url,
	       (SELECT COUNT(*) FROM comments r WHERE r.parent_id = c.id),
	       (SELECT COUNT(*) FROM comment_reactions a WHERE a.comment_id = c.id AND a.agree = 1),
	       COALESCE((SELECT v.agree FROM comment_reactions v WHERE v.comment_id = c.id AND v.user_id = ?), -1)
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func (r *sqliteCommentRepo) ListTopLevel(ctx context.Context, postID, viewerID string) ([]*models.Comment, error) {
	query := commentSelect + `
		WHERE c.post_id = ? AND c.parent_id IS NULL
		ORDER BY c.created_at ASC, c.rowid ASC`

	return r.list(ctx, query, viewerID, postID)
}

func (r *sqliteCommentRepo) ListReplies(ctx context.Context, postID, parentID, viewerID string, limit, offset int) ([]*models.Comment, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE id = ? AND post_id = ?`, parentID, postID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check parent comment: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: comment %s", pkg.ErrNotFound, parentID)
	}

	query := commentSelect + `
		WHERE c.parent_id = ?
		ORDER BY c.created_at ASC, c.rowid ASC
		LIMIT ? OFFSET ?`

	return r.list(ctx, query, viewerID, parentID, limit, offset)
}

func (r *sqliteCommentRepo) GetByID(ctx context.Context, id, viewerID string) (*models.Comment, error) {
	query := commentSelect + ` WHERE c.id = ?`

	c, err := scanComment(r.db.QueryRowContext(ctx, query, viewerID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: comment %s", pkg.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

func (r *sqliteCommentRepo) Create(ctx context.Context, comment *models.Comment, clientID string) (*models.Comment, error) {
	if comment.Parent != nil {
		var parentPost string
		err := r.db.QueryRowContext(ctx,
			`SELECT post_id FROM comments WHERE id = ?`, *comment.Parent,
		).Scan(&parentPost)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && parentPost != comment.PostID) {
			return nil, fmt.Errorf("%w: parent comment %s", pkg.ErrNotFound, *comment.Parent)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check parent comment: %w", err)
		}
	}

	var client *string
	if clientID != "" {
		client = &clientID
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	// A repeated (user_id, client_id) hits the partial unique index and
	// inserts nothing.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, parent_id, user_id, content, client_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`,
		id, comment.PostID, comment.Parent, comment.CreatedBy.ID, comment.Content, client, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if client != nil {
		var postID string
		var parentID sql.NullString
		err := r.db.QueryRowContext(ctx,
			`SELECT id, post_id, parent_id FROM comments WHERE user_id = ? AND client_id = ?`,
			comment.CreatedBy.ID, clientID,
		).Scan(&id, &postID, &parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve comment by client id: %w", err)
		}

		// A client id names one submission; reusing it elsewhere is not a retry.
		if postID != comment.PostID || parentID.Valid != (comment.Parent != nil) ||
			(comment.Parent != nil && parentID.String != *comment.Parent) {
			return nil, fmt.Errorf("%w: client_id %s was used for another comment", pkg.ErrAlreadyExists, clientID)
		}
	}

	return r.GetByID(ctx, id, comment.CreatedBy.ID)
}

func (r *sqliteCommentRepo) list(ctx context.Context, query string, args ...any) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	c := &models.Comment{}
	var reaction int
	err := row.Scan(
		&c.ID, &c.PostID, &c.Content, &c.Parent, &c.CreatedAt, &c.UpdatedAt,
		&c.CreatedBy.ID, &c.CreatedBy.Username, &c.CreatedBy.DisplayName, &c.CreatedBy.AvatarURL,
		&c.RepliesCount, &c.AgreeCount, &reaction,
	)
	if err != nil {
		return nil, err
	}
	c.IsAgreed = reaction == 1
	c.IsDisagreed = reaction == 0
	return c, nil
}
