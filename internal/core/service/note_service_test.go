package service

import (
	"context"
	"errors"
	"testing"

	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
)

func newNoteService(notes *stubNoteRepo, users *stubUserRepo) *NoteService {
	return NewNoteService(notes, users, nil, discardLogger)
}

func seedNote(repo *stubNoteRepo, userID, title string) *domain.Note {
	n, _ := repo.Insert(context.Background(), &domain.Note{
		UserID: userID,
		Title:  title,
		Text:   "body",
	})
	return n
}

// ---------------------------------------------------------------------------
// ListNotes tests
// ---------------------------------------------------------------------------

func TestNoteService_List_AttachesUsername(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)

	alice := seedUser(users, "alice")
	seedNote(notes, alice.ID, "t1")

	items, err := svc.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Username != "alice" {
		t.Errorf("expected username %q, got %q", "alice", items[0].Username)
	}
	if items[0].Note.Title != "t1" || items[0].Note.Completed {
		t.Errorf("note fields wrong: %+v", items[0].Note)
	}
}

func TestNoteService_List_ReflectsCurrentUsername(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)

	alice := seedUser(users, "alice")
	seedNote(notes, alice.ID, "t1")

	userSvc := newUserService(users, notes)
	if _, err := userSvc.UpdateUser(context.Background(), ports.UpdateUserInput{
		ID:       alice.ID,
		Username: "alicia",
		Roles:    []string{domain.RoleEmployee},
		Active:   true,
	}); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	items, err := svc.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Username != "alicia" {
		t.Errorf("listing must reflect the current username, got %q", items[0].Username)
	}
}

func TestNoteService_List_DanglingOwnerNullFilled(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)

	seedNote(notes, "gone-user", "orphan")

	items, err := svc.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("a dangling owner must not fail the listing: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("the orphaned note must still be listed, got %d items", len(items))
	}
	if items[0].Username != "" {
		t.Errorf("dangling owner must null-fill username, got %q", items[0].Username)
	}
}

func TestNoteService_List_Empty(t *testing.T) {
	svc := newNoteService(newStubNoteRepo(), newStubUserRepo())

	items, err := svc.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty listing, got %d", len(items))
	}
}

func TestNoteService_List_ServesFromCache(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	cache := &stubCache{
		present: true,
		items: []ports.NoteListItem{
			{Note: domain.Note{ID: "cached-1", Title: "from-cache"}, Username: "alice"},
		},
	}
	svc := NewNoteService(notes, users, cache, discardLogger)

	items, err := svc.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Note.ID != "cached-1" {
		t.Errorf("expected the cached listing, got %+v", items)
	}
}

func TestNoteService_List_PopulatesCacheOnMiss(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	cache := &stubCache{}
	svc := NewNoteService(notes, users, cache, discardLogger)

	alice := seedUser(users, "alice")
	seedNote(notes, alice.ID, "t1")

	if _, err := svc.ListNotes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.sets)
	}
}

// ---------------------------------------------------------------------------
// CreateNote tests
// ---------------------------------------------------------------------------

func TestNoteService_Create_Success(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)
	alice := seedUser(users, "alice")

	created, err := svc.CreateNote(context.Background(), ports.CreateNoteInput{
		UserID: alice.ID,
		Title:  "t1",
		Text:   "hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("created note must have an id")
	}
	if created.Completed {
		t.Error("completed must default to false")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps must be set")
	}
}

func TestNoteService_Create_DuplicateTitleAborts(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)
	seedNote(notes, "u1", "t1")

	_, err := svc.CreateNote(context.Background(), ports.CreateNoteInput{
		UserID: "u2",
		Title:  "t1",
		Text:   "other",
	})
	if !errors.Is(err, domain.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	// The conflicting create must not leave a second note behind.
	if len(notes.byID) != 1 {
		t.Errorf("expected 1 stored note, got %d", len(notes.byID))
	}
}

func TestNoteService_Create_InvalidatesCache(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	cache := &stubCache{present: true}
	svc := NewNoteService(notes, users, cache, discardLogger)

	if _, err := svc.CreateNote(context.Background(), ports.CreateNoteInput{
		UserID: "u1", Title: "t1", Text: "hello",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.invalidated != 1 {
		t.Errorf("expected 1 cache invalidation, got %d", cache.invalidated)
	}
}

// ---------------------------------------------------------------------------
// UpdateNote tests
// ---------------------------------------------------------------------------

func TestNoteService_Update_ReplacesFields(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)
	n := seedNote(notes, "u1", "t1")

	updated, err := svc.UpdateNote(context.Background(), ports.UpdateNoteInput{
		ID:        n.ID,
		UserID:    "u2",
		Title:     "t2",
		Text:      "edited",
		Completed: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.UserID != "u2" || updated.Title != "t2" || updated.Text != "edited" || !updated.Completed {
		t.Errorf("fields not replaced: %+v", updated)
	}
	stored := notes.byID[n.ID]
	if stored.Title != "t2" || !stored.Completed {
		t.Errorf("stored record not replaced: %+v", stored)
	}
}

func TestNoteService_Update_SelfTitleAllowed(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)
	n := seedNote(notes, "u1", "t1")

	// Keeping the note's own title is not a conflict.
	if _, err := svc.UpdateNote(context.Background(), ports.UpdateNoteInput{
		ID:        n.ID,
		UserID:    "u1",
		Title:     "t1",
		Text:      "edited",
		Completed: false,
	}); err != nil {
		t.Fatalf("self-collision must be allowed, got %v", err)
	}
}

func TestNoteService_Update_DuplicateOtherNote(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)
	seedNote(notes, "u1", "t1")
	other := seedNote(notes, "u1", "t2")

	_, err := svc.UpdateNote(context.Background(), ports.UpdateNoteInput{
		ID:        other.ID,
		UserID:    "u1",
		Title:     "t1",
		Text:      "edited",
		Completed: false,
	})
	if !errors.Is(err, domain.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
}

func TestNoteService_Update_NotFound(t *testing.T) {
	svc := newNoteService(newStubNoteRepo(), newStubUserRepo())

	_, err := svc.UpdateNote(context.Background(), ports.UpdateNoteInput{
		ID: "missing", UserID: "u1", Title: "t1", Text: "x",
	})
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteNote tests
// ---------------------------------------------------------------------------

func TestNoteService_Delete_Success(t *testing.T) {
	users := newStubUserRepo()
	notes := newStubNoteRepo()
	svc := newNoteService(notes, users)
	n := seedNote(notes, "u1", "t1")

	deleted, err := svc.DeleteNote(context.Background(), n.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted.Title != "t1" || deleted.ID != n.ID {
		t.Errorf("confirmation mismatch: %+v", deleted)
	}
	if _, ok := notes.byID[n.ID]; ok {
		t.Error("note must be removed from the store")
	}
}

func TestNoteService_Delete_NotFound(t *testing.T) {
	svc := newNoteService(newStubNoteRepo(), newStubUserRepo())

	_, err := svc.DeleteNote(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}
