package handler

import "time"

// messageResponse is the standard envelope for success confirmations and
// 4xx/5xx errors alike: {"message": "<text>"}.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createUserRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,required"`
}

// updateUserRequest replaces the whole mutable user state. The id travels in
// the body, not the path, preserving the original API contract. Active is a
// pointer so a missing field is distinguishable from false.
type updateUserRequest struct {
	ID       string   `json:"id"       validate:"required"`
	Username string   `json:"username" validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1,dive,required"`
	Active   *bool    `json:"active"   validate:"required"`
	Password string   `json:"password"`
}

type deleteUserRequest struct {
	ID string `json:"id" validate:"required"`
}

// --- Response types ---

// userResponse never carries password material.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
