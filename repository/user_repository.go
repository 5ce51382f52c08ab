// Package repository is the data access layer. Services depend on the
// interfaces declared here; the SQLite implementations live in sqlite_*.go.
package repository

//go:generate mockgen -destination=../services/mock_user_repository_test.go -package=services -source=user_repository.go

import (
	"context"

	"github.com/akinalp/sphere/models"
)

// UserRepository stores accounts.
type UserRepository interface {
	// Create assigns user.ID and user.CreatedAt.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
