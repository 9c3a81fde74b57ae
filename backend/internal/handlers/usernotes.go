package handlers

import (
	"net/http"

	"habit-board/backend/internal/blocks"
	"habit-board/backend/internal/models"
	"habit-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NoteHandler struct {
	db          *gorm.DB
	noteService services.NoteService
}

func NewNoteHandler(db *gorm.DB, noteService services.NoteService) *NoteHandler {
	return &NoteHandler{db: db, noteService: noteService}
}

// noteResponse carries the note with its content decoded back into blocks
// so clients never see the raw JSON column.
type noteResponse struct {
	models.Note
	Content []blocks.Block `json:"content"`
}

func toNoteResponse(n models.Note) noteResponse {
	decoded, err := blocks.Decode(n.Content)
	if err != nil {
		// Stored content is always written through Encode, so this only
		// happens for rows touched outside the API.
		decoded = blocks.Normalize(nil)
	}
	return noteResponse{Note: n, Content: decoded}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	notes, err := h.noteService.ListNotes(h.db, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	respond(c, http.StatusOK, out)
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var in services.CreateNoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.noteService.CreateNote(h.db, userID, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, toNoteResponse(*note))
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(h.db, userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, toNoteResponse(*note))
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.UpdateNoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.noteService.UpdateNote(h.db, userID, id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, toNoteResponse(*note))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(h.db, userID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "note deleted"})
}
