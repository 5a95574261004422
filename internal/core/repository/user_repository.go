package repository

import (
	"context"

	"github.com/martijn/papertrade/internal/core/domain"
)

type UserRepository interface {
	// Create inserts the user and fills in the assigned ID. Returns
	// domain.ErrUsernameTaken when the username is already registered.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]*domain.User, error)
}
