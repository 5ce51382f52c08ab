package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akinalp/sphere/database"
	"github.com/akinalp/sphere/models"
	"github.com/akinalp/sphere/pkg"
)

// sqliteChatRepo needs the pool itself, not a TxQuerier, because MarkRead
// opens its own transaction.
type sqliteChatRepo struct {
	db *sql.DB
}

func NewSQLiteChatRepo(db *sql.DB) ChatRepository {
	return &sqliteChatRepo{db: db}
}

func (r *sqliteChatRepo) ListForUser(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	query := `
		SELECT id, sender_id, receiver_id, text, created_at, read
		FROM chat_messages
		WHERE sender_id = ? OR receiver_id = ?
		ORDER BY created_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Timestamp, &m.Read); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}

	return messages, nil
}

func (r *sqliteChatRepo) Create(ctx context.Context, msg *models.ChatMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, sender_id, receiver_id, text, created_at, read)
		VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SenderID, msg.ReceiverID, msg.Text, msg.Timestamp.UTC(), msg.Read,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: message %s", pkg.ErrAlreadyExists, msg.ID)
		}
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *sqliteChatRepo) MarkRead(ctx context.Context, receiverID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	changed := 0
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`UPDATE chat_messages SET read = 1 WHERE id = ? AND receiver_id = ? AND read = 0`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, id := range ids {
			res, err := stmt.ExecContext(ctx, id, receiverID)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			changed += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to mark chat messages read: %w", err)
	}

	return changed, nil
}
