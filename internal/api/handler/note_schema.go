package handler

import "time"

// --- Request types ---

type createNoteRequest struct {
	User  string `json:"user"  validate:"required"`
	Title string `json:"title" validate:"required"`
	Text  string `json:"text"  validate:"required"`
}

// updateNoteRequest replaces the whole mutable note state. Completed is a
// pointer so a missing field is distinguishable from false.
type updateNoteRequest struct {
	ID        string `json:"id"        validate:"required"`
	User      string `json:"user"      validate:"required"`
	Title     string `json:"title"     validate:"required"`
	Text      string `json:"text"      validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type deleteNoteRequest struct {
	ID string `json:"id" validate:"required"`
}

// --- Response types ---

// noteResponse is a note denormalized with the owner's current username.
// Username is resolved at read time and may be empty when the owner no
// longer exists.
type noteResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
