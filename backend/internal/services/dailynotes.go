package services

import (
	"errors"
	"time"

	"habit-board/backend/internal/dateutil"
	"habit-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyNoteService interface {
	GetByDate(db *gorm.DB, userID uuid.UUID, date time.Time) (*models.DailyNote, error)
	Upsert(db *gorm.DB, userID uuid.UUID, date time.Time, content string) (*models.DailyNote, error)
	DeleteByDate(db *gorm.DB, userID uuid.UUID, date time.Time) error
}

type DailyNoteServiceImpl struct{}

func NewDailyNoteService() *DailyNoteServiceImpl {
	return &DailyNoteServiceImpl{}
}

// GetByDate returns the note for the user's calendar day, or an empty note
// for the day when none exists yet.
func (s *DailyNoteServiceImpl) GetByDate(db *gorm.DB, userID uuid.UUID, date time.Time) (*models.DailyNote, error) {
	day := dateutil.NoonUTC(date)

	var note models.DailyNote
	err := db.Where("user_id = ? AND date = ?", userID, day).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyNote{UserID: userID, Date: day}, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *DailyNoteServiceImpl) Upsert(db *gorm.DB, userID uuid.UUID, date time.Time, content string) (*models.DailyNote, error) {
	day := dateutil.NoonUTC(date)

	note := models.DailyNote{
		ID:      uuid.Must(uuid.NewV4()),
		UserID:  userID,
		Date:    day,
		Content: content,
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"content": content, "updated_at": time.Now()}),
	}).Create(&note).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the surviving row, not the candidate.
	var saved models.DailyNote
	if err := db.Where("user_id = ? AND date = ?", userID, day).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *DailyNoteServiceImpl) DeleteByDate(db *gorm.DB, userID uuid.UUID, date time.Time) error {
	day := dateutil.NoonUTC(date)
	return db.Where("user_id = ? AND date = ?", userID, day).
		Delete(&models.DailyNote{}).Error
}
