package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/technotes/notes-system/internal/core/ports"
)

const noteListKey = "notes:list"

// NoteListCache caches the denormalized note listing in Redis. The listing is
// the only multi-lookup read path (one user resolution per distinct owner),
// so it is the one worth caching. Any user or note mutation invalidates it.
type NoteListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNoteListCache wraps the given Redis client. The TTL bounds staleness in
// case an invalidation is lost.
func NewNoteListCache(client *redis.Client, ttl time.Duration) *NoteListCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &NoteListCache{client: client, ttl: ttl}
}

type cachedItem struct {
	Note     cachedNote `json:"note"`
	Username string     `json:"username"`
}

type cachedNote struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get returns the cached listing and whether it was present.
func (c *NoteListCache) Get(ctx context.Context) ([]ports.NoteListItem, bool, error) {
	raw, err := c.client.Get(ctx, noteListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("note list cache get: %w", err)
	}

	var cached []cachedItem
	if err := json.Unmarshal(raw, &cached); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, false, nil
	}

	items := make([]ports.NoteListItem, 0, len(cached))
	for _, ci := range cached {
		items = append(items, ci.toItem())
	}
	return items, true, nil
}

// Set stores the listing, expiring after the configured TTL.
func (c *NoteListCache) Set(ctx context.Context, items []ports.NoteListItem) error {
	cached := make([]cachedItem, 0, len(items))
	for _, item := range items {
		cached = append(cached, fromItem(item))
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("note list cache encode: %w", err)
	}
	return c.client.Set(ctx, noteListKey, raw, c.ttl).Err()
}

// Invalidate drops the cached listing.
func (c *NoteListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, noteListKey).Err()
}

func (ci cachedItem) toItem() ports.NoteListItem {
	item := ports.NoteListItem{Username: ci.Username}
	item.Note.ID = ci.Note.ID
	item.Note.UserID = ci.Note.User
	item.Note.Title = ci.Note.Title
	item.Note.Text = ci.Note.Text
	item.Note.Completed = ci.Note.Completed
	item.Note.CreatedAt = ci.Note.CreatedAt
	item.Note.UpdatedAt = ci.Note.UpdatedAt
	return item
}

func fromItem(item ports.NoteListItem) cachedItem {
	return cachedItem{
		Username: item.Username,
		Note: cachedNote{
			ID:        item.Note.ID,
			User:      item.Note.UserID,
			Title:     item.Note.Title,
			Text:      item.Note.Text,
			Completed: item.Note.Completed,
			CreatedAt: item.Note.CreatedAt,
			UpdatedAt: item.Note.UpdatedAt,
		},
	}
}
