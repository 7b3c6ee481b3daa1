package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]domain.User, error)
	createFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) (*ports.DeletedUser, error)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, input)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) (*ports.DeletedUser, error) {
	return s.deleteFn(ctx, id)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_List_Success(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: "u1", Username: "alice", Roles: []string{"Employee"}, Active: true, PasswordHash: "hash"},
			}, nil
		},
	}
	h := NewUserHandler(stub)
	c, rec := newTestContext(t, http.MethodGet, "/users", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp[0]["password"]; leaked {
		t.Fatal("password material must never be serialized")
	}
}

func TestUserHandler_List_Empty(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) { return nil, nil },
	}
	h := NewUserHandler(stub)
	c, rec := newTestContext(t, http.MethodGet, "/users", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No users found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Username != "alice" || input.Password != "pass1" || len(input.Roles) != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "u1", Username: "alice", Roles: input.Roles, Active: true}, nil
		},
	}
	h := NewUserHandler(stub)
	c, rec := newTestContext(t, http.MethodPost, "/users",
		`{"username":"alice","password":"pass1","roles":["Employee"]}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "New user alice created") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	cases := []struct {
		name string
		body string
	}{
		{"no username", `{"password":"pass1","roles":["Employee"]}`},
		{"no password", `{"username":"alice","roles":["Employee"]}`},
		{"no roles", `{"username":"alice","password":"pass1"}`},
		{"empty roles", `{"username":"alice","password":"pass1","roles":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodPost, "/users", tc.body)

			err := h.Create(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
		})
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateUsername
		},
	}
	h := NewUserHandler(stub)
	c, _ := newTestContext(t, http.MethodPost, "/users",
		`{"username":"alice","password":"pass1","roles":["Employee"]}`)

	err := h.Create(c)
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername to propagate, got %v", err)
	}
}

func TestUserHandler_Update_Success(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
			if input.ID != "u1" || input.Active {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "u1", Username: input.Username, Roles: input.Roles, Active: input.Active}, nil
		},
	}
	h := NewUserHandler(stub)
	c, rec := newTestContext(t, http.MethodPatch, "/users",
		`{"id":"u1","username":"alice","roles":["Manager"],"active":false}`)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice updated") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_Update_MissingActive(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)
	c, _ := newTestContext(t, http.MethodPatch, "/users",
		`{"id":"u1","username":"alice","roles":["Manager"]}`)

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Update_NonBooleanActive(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)
	c, _ := newTestContext(t, http.MethodPatch, "/users",
		`{"id":"u1","username":"alice","roles":["Manager"],"active":"yes"}`)

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) (*ports.DeletedUser, error) {
			if id != "u1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &ports.DeletedUser{ID: "u1", Username: "alice"}, nil
		},
	}
	h := NewUserHandler(stub)
	c, rec := newTestContext(t, http.MethodDelete, "/users", `{"id":"u1"}`)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var reply string
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("expected a JSON string confirmation: %v", err)
	}
	if reply != "Username alice with ID u1 deleted" {
		t.Fatalf("unexpected confirmation: %q", reply)
	}
}

func TestUserHandler_Delete_MissingID(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) (*ports.DeletedUser, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)
	c, _ := newTestContext(t, http.MethodDelete, "/users", `{}`)

	err := h.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Delete_HasNotes(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) (*ports.DeletedUser, error) {
			return nil, domain.ErrUserHasNotes
		},
	}
	h := NewUserHandler(stub)
	c, _ := newTestContext(t, http.MethodDelete, "/users", `{"id":"u1"}`)

	err := h.Delete(c)
	if !errors.Is(err, domain.ErrUserHasNotes) {
		t.Fatalf("expected ErrUserHasNotes to propagate, got %v", err)
	}
}
