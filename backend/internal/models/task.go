package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// DefaultTaskColor is applied when a task is created without a color.
const DefaultTaskColor = "#3B82F6"

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	Color       string     `json:"color" gorm:"not null;default:'#3B82F6'"`
	Emoji       string     `json:"emoji"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true"`
	IsCompleted bool       `json:"is_completed" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	SortOrder   int        `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Completions []TaskCompletion `json:"completions,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TaskCompletion marks a task done on one calendar day. The date is
// normalized to 12:00 UTC and "not completed" is the absence of the row,
// never a persisted false.
type TaskCompletion struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	TaskID    uuid.UUID `json:"task_id" gorm:"type:uuid;not null;uniqueIndex:idx_task_completion_date"`
	Date      time.Time `json:"date" gorm:"not null;uniqueIndex:idx_task_completion_date"`
	Completed bool      `json:"completed" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
