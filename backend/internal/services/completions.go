package services

import (
	"time"

	"habit-board/backend/internal/dateutil"
	"habit-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionService interface {
	ListCompletions(db *gorm.DB, userID uuid.UUID, from, to time.Time) ([]models.TaskCompletion, error)
	Toggle(db *gorm.DB, userID, taskID uuid.UUID, date time.Time, completed bool) (*models.TaskCompletion, error)
}

type CompletionServiceImpl struct{}

func NewCompletionService() *CompletionServiceImpl {
	return &CompletionServiceImpl{}
}

func (s *CompletionServiceImpl) ListCompletions(db *gorm.DB, userID uuid.UUID, from, to time.Time) ([]models.TaskCompletion, error) {
	var completions []models.TaskCompletion

	err := db.
		Joins("JOIN tasks ON tasks.id = task_completions.task_id").
		Where("tasks.user_id = ?", userID).
		Where("task_completions.date >= ? AND task_completions.date <= ?",
			dateutil.NoonUTC(from), dateutil.NoonUTC(to)).
		Order("task_completions.date asc").
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}

// Toggle flips a task's state for one calendar day. Done means a row exists
// with completed=true; undone means no row at all, so un-checking deletes.
func (s *CompletionServiceImpl) Toggle(db *gorm.DB, userID, taskID uuid.UUID, date time.Time, completed bool) (*models.TaskCompletion, error) {
	var task models.Task
	if err := db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return nil, err
	}

	day := dateutil.NoonUTC(date)

	if !completed {
		err := db.Where("task_id = ? AND date = ?", taskID, day).
			Delete(&models.TaskCompletion{}).Error
		if err != nil {
			return nil, err
		}
		return nil, nil
	}

	completion := models.TaskCompletion{
		ID:        uuid.Must(uuid.NewV4()),
		TaskID:    taskID,
		Date:      day,
		Completed: true,
	}

	// Racing toggles for the same (task, date) land on the unique index;
	// ON CONFLICT turns the loser into an update instead of an error.
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed": true, "updated_at": time.Now()}),
	}).Create(&completion).Error
	if err != nil {
		return nil, err
	}

	return &completion, nil
}
