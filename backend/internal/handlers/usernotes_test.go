package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"habit-board/backend/internal/blocks"
	"habit-board/backend/internal/middleware"
	"habit-board/backend/internal/models"
	"habit-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type stubNoteService struct {
	notes map[uuid.UUID]models.Note
}

func newStubNoteService() *stubNoteService {
	return &stubNoteService{notes: make(map[uuid.UUID]models.Note)}
}

func (s *stubNoteService) ListNotes(db *gorm.DB, userID uuid.UUID) ([]models.Note, error) {
	var out []models.Note
	for _, n := range s.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNoteService) CreateNote(db *gorm.DB, userID uuid.UUID, in services.CreateNoteInput) (*models.Note, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", services.ErrValidation)
	}
	content, err := blocks.Encode(blocks.Normalize(in.Content))
	if err != nil {
		return nil, err
	}
	id, _ := uuid.NewV4()
	note := models.Note{ID: id, UserID: userID, Title: in.Title, Content: content}
	s.notes[id] = note
	return &note, nil
}

func (s *stubNoteService) GetNote(db *gorm.DB, userID, id uuid.UUID) (*models.Note, error) {
	n, ok := s.notes[id]
	if !ok || n.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &n, nil
}

func (s *stubNoteService) UpdateNote(db *gorm.DB, userID, id uuid.UUID, in services.UpdateNoteInput) (*models.Note, error) {
	n, err := s.GetNote(db, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Content != nil {
		content, err := blocks.Encode(blocks.Normalize(*in.Content))
		if err != nil {
			return nil, err
		}
		n.Content = content
	}
	s.notes[id] = *n
	return n, nil
}

func (s *stubNoteService) DeleteNote(db *gorm.DB, userID, id uuid.UUID) error {
	if _, err := s.GetNote(db, userID, id); err != nil {
		return err
	}
	delete(s.notes, id)
	return nil
}

func setupNoteRouter(svc services.NoteService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNoteHandler(nil, svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	r.GET("/api/user-notes", h.ListNotes)
	r.POST("/api/user-notes", h.CreateNote)
	r.GET("/api/user-notes/:id", h.GetNote)
	r.PUT("/api/user-notes/:id", h.UpdateNote)
	r.DELETE("/api/user-notes/:id", h.DeleteNote)
	return r
}

func TestCreateNoteDecodesContent(t *testing.T) {
	userID, _ := uuid.NewV4()
	r := setupNoteRouter(newStubNoteService(), userID)

	body := map[string]interface{}{
		"title": "Groceries",
		"content": []map[string]interface{}{
			{"type": "text", "content": "Saturday run"},
			{"type": "text", "content": "Bread"},
			{"type": "todo", "content": "Milk", "completed": true},
		},
	}
	w, env := doJSON(t, r, http.MethodPost, "/api/user-notes", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (body %s)", w.Code, w.Body.String())
	}

	var note struct {
		Content []blocks.Block `json:"content"`
	}
	if err := json.Unmarshal(env.Data, &note); err != nil {
		t.Fatalf("Failed to decode note: %v", err)
	}
	// Adjacent text blocks merge during normalization.
	if len(note.Content) != 2 {
		t.Fatalf("Expected 2 blocks after normalization, got %d", len(note.Content))
	}
	if note.Content[0].Content != "Saturday run\n\nBread" {
		t.Errorf("Expected merged text block, got %q", note.Content[0].Content)
	}
	if note.Content[1].Type != blocks.TypeTodo || !note.Content[1].Completed {
		t.Errorf("Expected completed todo block, got %+v", note.Content[1])
	}
}

func TestCreateNoteRequiresTitle(t *testing.T) {
	userID, _ := uuid.NewV4()
	r := setupNoteRouter(newStubNoteService(), userID)

	w, _ := doJSON(t, r, http.MethodPost, "/api/user-notes", map[string]interface{}{"title": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestNoteCrossUserIsNotFound(t *testing.T) {
	owner, _ := uuid.NewV4()
	intruder, _ := uuid.NewV4()
	svc := newStubNoteService()

	ownerRouter := setupNoteRouter(svc, owner)
	_, env := doJSON(t, ownerRouter, http.MethodPost, "/api/user-notes", map[string]interface{}{
		"title": "Private",
	})
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("Failed to decode created note: %v", err)
	}

	intruderRouter := setupNoteRouter(svc, intruder)
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w, _ := doJSON(t, intruderRouter, method, "/api/user-notes/"+created.ID, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 for %s by another user, got %d", method, w.Code)
		}
	}
}

func TestUpdateNoteReplacesContent(t *testing.T) {
	userID, _ := uuid.NewV4()
	svc := newStubNoteService()
	r := setupNoteRouter(svc, userID)

	_, env := doJSON(t, r, http.MethodPost, "/api/user-notes", map[string]interface{}{
		"title": "Ideas",
		"content": []map[string]interface{}{
			{"type": "text", "content": "old"},
		},
	})
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("Failed to decode created note: %v", err)
	}

	w, env := doJSON(t, r, http.MethodPut, "/api/user-notes/"+created.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "content": "new"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var note struct {
		Content []blocks.Block `json:"content"`
	}
	if err := json.Unmarshal(env.Data, &note); err != nil {
		t.Fatalf("Failed to decode note: %v", err)
	}
	if len(note.Content) != 1 || note.Content[0].Content != "new" {
		t.Errorf("Expected replaced content, got %+v", note.Content)
	}
}
