package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// CreateNoteInput carries the data needed to create a new note.
type CreateNoteInput struct {
	UserID string
	Title  string
	Text   string
}

// UpdateNoteInput is a full replacement of the mutable note fields.
type UpdateNoteInput struct {
	ID        string
	UserID    string
	Title     string
	Text      string
	Completed bool
}

// NoteListItem is a note decorated with the owner's current username.
// The join happens at read time; the username is never stored on the note.
type NoteListItem struct {
	Note     domain.Note
	Username string
}

// DeletedNote identifies a removed note for the delete confirmation.
type DeletedNote struct {
	ID    string
	Title string
}

// NoteService defines use-case operations for notes.
type NoteService interface {
	ListNotes(ctx context.Context) ([]NoteListItem, error)
	CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error)
	UpdateNote(ctx context.Context, input UpdateNoteInput) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) (*DeletedNote, error)
}

// NoteListCache caches the denormalized note listing between mutations.
type NoteListCache interface {
	Get(ctx context.Context) ([]NoteListItem, bool, error)
	Set(ctx context.Context, items []NoteListItem) error
	Invalidate(ctx context.Context) error
}
