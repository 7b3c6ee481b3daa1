package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/technotes/notes-system/internal/api/metrics"
	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
)

type NoteService struct {
	notes  ports.NoteRepository
	users  ports.UserRepository
	cache  ports.NoteListCache
	logger zerolog.Logger
}

// NewNoteService wires the note use cases. cache may be nil.
func NewNoteService(notes ports.NoteRepository, users ports.UserRepository, cache ports.NoteListCache, logger zerolog.Logger) *NoteService {
	return &NoteService{notes: notes, users: users, cache: cache, logger: logger}
}

// ListNotes returns all notes with the owner's current username attached.
// A note whose owner no longer exists is kept with an empty username rather
// than failing the whole listing.
func (s *NoteService) ListNotes(ctx context.Context) ([]ports.NoteListItem, error) {
	if s.cache != nil {
		if items, ok, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("note list cache read failed")
		} else if ok {
			metrics.NoteListCacheTotal.WithLabelValues("hit").Inc()
			return items, nil
		}
		metrics.NoteListCacheTotal.WithLabelValues("miss").Inc()
	}

	notes, err := s.notes.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	usernames := make(map[string]string, len(notes))
	items := make([]ports.NoteListItem, 0, len(notes))
	for _, note := range notes {
		username, seen := usernames[note.UserID]
		if !seen {
			owner, err := s.users.FindByID(ctx, note.UserID)
			switch {
			case err == nil:
				username = owner.Username
			case err == domain.ErrUserNotFound:
				s.logger.Warn().Str("note_id", note.ID).Str("user_id", note.UserID).Msg("note references missing user")
			default:
				return nil, err
			}
			usernames[note.UserID] = username
		}
		items = append(items, ports.NoteListItem{Note: note, Username: username})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, items); err != nil {
			s.logger.Warn().Err(err).Msg("note list cache write failed")
		}
	}
	return items, nil
}

// CreateNote persists a new note with completed defaulted to false. A
// duplicate title aborts the creation before the insert; the unique index on
// title backstops the race. The owner reference is stored as given and is not
// validated against a live user here.
func (s *NoteService) CreateNote(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	if _, err := s.notes.FindByTitle(ctx, input.Title); err == nil {
		return nil, domain.ErrDuplicateTitle
	} else if err != domain.ErrNoteNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	note := &domain.Note{
		UserID:    input.UserID,
		Title:     input.Title,
		Text:      input.Text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.notes.Insert(ctx, note)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create note")
		return nil, err
	}

	metrics.NotesCreatedTotal.Inc()
	s.invalidate(ctx)
	s.logger.Info().Str("note_id", created.ID).Str("title", created.Title).Msg("note created")
	return created, nil
}

// UpdateNote replaces user, title, text and completed unconditionally. A
// title collision with a different note is a conflict; keeping the note's own
// title is allowed.
func (s *NoteService) UpdateNote(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
	note, err := s.notes.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if other, err := s.notes.FindByTitle(ctx, input.Title); err == nil {
		if other.ID != input.ID {
			return nil, domain.ErrDuplicateTitle
		}
	} else if err != domain.ErrNoteNotFound {
		return nil, err
	}

	note.UserID = input.UserID
	note.Title = input.Title
	note.Text = input.Text
	note.Completed = input.Completed
	note.UpdatedAt = time.Now().UTC()

	if err := s.notes.Update(ctx, note); err != nil {
		s.logger.Error().Err(err).Str("note_id", note.ID).Msg("failed to update note")
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("note_id", note.ID).Str("title", note.Title).Msg("note updated")
	return note, nil
}

// DeleteNote removes a note permanently. Notes can be deleted freely; only
// user deletion carries a referential guard.
func (s *NoteService) DeleteNote(ctx context.Context, id string) (*ports.DeletedNote, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("note_id", id).Msg("failed to delete note")
		return nil, err
	}

	metrics.NotesDeletedTotal.Inc()
	s.invalidate(ctx)
	s.logger.Info().Str("note_id", id).Str("title", note.Title).Msg("note deleted")
	return &ports.DeletedNote{ID: id, Title: note.Title}, nil
}

func (s *NoteService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate note list cache")
	}
}
