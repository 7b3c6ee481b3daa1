package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// AuthService authenticates users and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
