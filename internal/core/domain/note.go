package domain

import (
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrDuplicateTitle = errors.New("duplicate note title")

// Note is a work item assigned to exactly one user. Title is globally unique.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
