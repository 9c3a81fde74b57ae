package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// DailyNote is the per-day todo/notes blob. Content holds the line-oriented
// todo text format (see internal/todotext). One row per (user, date).
type DailyNote struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_daily_note_user_date"`
	Date      time.Time `json:"date" gorm:"not null;uniqueIndex:idx_daily_note_user_date"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a free-form note. Content is a JSON-encoded ordered block list
// (see internal/blocks).
type Note struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
