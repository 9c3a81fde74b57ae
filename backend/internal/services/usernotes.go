package services

import (
	"fmt"

	"habit-board/backend/internal/blocks"
	"habit-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CreateNoteInput struct {
	Title   string         `json:"title"`
	Content []blocks.Block `json:"content"`
}

type UpdateNoteInput struct {
	Title   *string         `json:"title"`
	Content *[]blocks.Block `json:"content"`
}

type NoteService interface {
	ListNotes(db *gorm.DB, userID uuid.UUID) ([]models.Note, error)
	CreateNote(db *gorm.DB, userID uuid.UUID, in CreateNoteInput) (*models.Note, error)
	GetNote(db *gorm.DB, userID, id uuid.UUID) (*models.Note, error)
	UpdateNote(db *gorm.DB, userID, id uuid.UUID, in UpdateNoteInput) (*models.Note, error)
	DeleteNote(db *gorm.DB, userID, id uuid.UUID) error
}

type NoteServiceImpl struct{}

func NewNoteService() *NoteServiceImpl {
	return &NoteServiceImpl{}
}

func (s *NoteServiceImpl) ListNotes(db *gorm.DB, userID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := db.Where("user_id = ?", userID).
		Order("sort_order asc, created_at asc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *NoteServiceImpl) CreateNote(db *gorm.DB, userID uuid.UUID, in CreateNoteInput) (*models.Note, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	content, err := encodeBlocks(in.Content)
	if err != nil {
		return nil, err
	}

	var maxOrder *int
	if err := db.Model(&models.Note{}).
		Where("user_id = ?", userID).
		Select("max(sort_order)").
		Scan(&maxOrder).Error; err != nil {
		return nil, err
	}
	nextOrder := 0
	if maxOrder != nil {
		nextOrder = *maxOrder + 1
	}

	note := models.Note{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    userID,
		Title:     in.Title,
		Content:   content,
		SortOrder: nextOrder,
	}

	if err := db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteServiceImpl) GetNote(db *gorm.DB, userID, id uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces the whole block list when content is present; there
// is no block-level diffing, last writer wins.
func (s *NoteServiceImpl) UpdateNote(db *gorm.DB, userID, id uuid.UUID, in UpdateNoteInput) (*models.Note, error) {
	var note models.Note
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		content, err := encodeBlocks(*in.Content)
		if err != nil {
			return nil, err
		}
		updates["content"] = content
	}

	if len(updates) == 0 {
		return &note, nil
	}

	if err := db.Model(&note).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteServiceImpl) DeleteNote(db *gorm.DB, userID, id uuid.UUID) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func encodeBlocks(bs []blocks.Block) (string, error) {
	for i, b := range bs {
		if !b.Type.Valid() {
			return "", fmt.Errorf("%w: unknown block type %q at index %d", ErrValidation, b.Type, i)
		}
	}
	content, err := blocks.Encode(blocks.Normalize(bs))
	if err != nil {
		return "", err
	}
	return content, nil
}
