package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/technotes/notes-system/internal/api/metrics"
	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	notes  ports.NoteRepository
	cache  ports.NoteListCache
	logger zerolog.Logger
}

// NewUserService wires the user use cases. cache may be nil when no note-list
// cache is configured; username changes must invalidate it because the note
// listing denormalizes usernames at read time.
func NewUserService(users ports.UserRepository, notes ports.NoteRepository, cache ports.NoteListCache, logger zerolog.Logger) *UserService {
	return &UserService{users: users, notes: notes, cache: cache, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// CreateUser hashes the password and persists a new account. The duplicate
// check here is a fast-path rejection; the unique index on username is the
// authoritative guard against concurrent inserts.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Roles:        input.Roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user created")
	return created, nil
}

// UpdateUser replaces username, roles and active unconditionally and rehashes
// the password only when a new one was supplied. A username collision with a
// different user is a conflict; keeping one's own username is allowed.
func (s *UserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if other, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		if other.ID != input.ID {
			return nil, domain.ErrDuplicateUsername
		}
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	user.Username = input.Username
	user.Roles = input.Roles
	user.Active = input.Active
	user.UpdatedAt = time.Now().UTC()

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update user")
		return nil, err
	}

	s.invalidateNoteList(ctx)
	s.logger.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

// DeleteUser removes an account permanently. The deletion is rejected while
// any note still references the user.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*ports.DeletedUser, error) {
	hasNotes, err := s.notes.ExistsForUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if hasNotes {
		return nil, domain.ErrUserHasNotes
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return nil, err
	}

	metrics.UsersDeletedTotal.Inc()
	s.invalidateNoteList(ctx)
	s.logger.Info().Str("username", user.Username).Str("user_id", id).Msg("user deleted")
	return &ports.DeletedUser{ID: id, Username: user.Username}, nil
}

func (s *UserService) invalidateNoteList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate note list cache")
	}
}
