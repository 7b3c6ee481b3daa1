package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// NoteRepository defines the persistence operations for notes.
type NoteRepository interface {
	FindAll(ctx context.Context) ([]domain.Note, error)
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	FindByTitle(ctx context.Context, title string) (*domain.Note, error)
	// ExistsForUser reports whether any note references the given user.
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	Insert(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
}
