// Repository layer setup.

package main

import (
	"database/sql"

	"github.com/akinalp/sphere/repository"
)

// Repositories groups every repository so the other init steps take one
// argument instead of many.
type Repositories struct {
	User    repository.UserRepository
	Comment repository.CommentRepository
	Chat    repository.ChatRepository
}

// initRepositories builds the SQLite repositories. They share conn, which
// is a pooled, goroutine-safe handle.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:    repository.NewSQLiteUserRepo(conn),
		Comment: repository.NewSQLiteCommentRepo(conn),
		Chat:    repository.NewSQLiteChatRepo(conn),
	}
}
