package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// CreateUserInput carries the data needed to create a new user account.
type CreateUserInput struct {
	Username string
	Password string
	Roles    []string
}

// UpdateUserInput is a full replacement of the mutable user fields. Password
// is optional: when empty the stored hash is left untouched.
type UpdateUserInput struct {
	ID       string
	Username string
	Roles    []string
	Active   bool
	Password string
}

// DeletedUser identifies a removed account for the delete confirmation.
type DeletedUser struct {
	ID       string
	Username string
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (*DeletedUser, error)
}
