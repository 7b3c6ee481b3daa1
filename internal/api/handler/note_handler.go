package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-system/internal/core/ports"
)

// NoteHandler handles HTTP requests for the note resource.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List handles GET /notes. Each note carries the owner's current username,
// resolved at read time.
//
// @Summary      List all notes
// @Tags         notes
// @Produce      json
// @Success      200  {array}  noteResponse
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	items, err := h.service.ListNotes(c.Request().Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return c.JSON(http.StatusOK, messageResponse{Message: "No notes found"})
	}

	resp := make([]noteResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, noteResponse{
			ID:        item.Note.ID,
			User:      item.Note.UserID,
			Title:     item.Note.Title,
			Text:      item.Note.Text,
			Completed: item.Note.Completed,
			Username:  item.Username,
			CreatedAt: item.Note.CreatedAt,
			UpdatedAt: item.Note.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /notes.
//
// @Summary      Create a new note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      createNoteRequest  true  "New note details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.service.CreateNote(c.Request().Context(), ports.CreateNoteInput{
		UserID: req.User,
		Title:  req.Title,
		Text:   req.Text,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "New note Created"})
}

// Update handles PATCH /notes.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      updateNoteRequest  true  "Replacement note state"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /notes [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.UpdateNote(c.Request().Context(), ports.UpdateNoteInput{
		ID:        req.ID,
		UserID:    req.User,
		Title:     req.Title,
		Text:      req.Text,
		Completed: *req.Completed,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s updated", note.Title),
	})
}

// Delete handles DELETE /notes. The confirmation body is a plain JSON string,
// matching the original API contract.
//
// @Summary      Delete a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      deleteNoteRequest  true  "Note to delete"
// @Success      200   {string}  string
// @Failure      400   {object}  messageResponse
// @Router       /notes [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	var req deleteNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	deleted, err := h.service.DeleteNote(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	reply := fmt.Sprintf("Note '%s' with ID '%s' deleted", deleted.Title, deleted.ID)
	return c.JSON(http.StatusOK, reply)
}
