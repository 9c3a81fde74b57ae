package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"habit-board/backend/internal/dateutil"
	"habit-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// ErrValidation marks input errors that handlers report as 400 before any
// row is touched.
var ErrValidation = errors.New("validation failed")

var colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type CreateTaskInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Emoji       string `json:"emoji"`
}

// UpdateTaskInput is a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Emoji       *string `json:"emoji"`
	IsActive    *bool   `json:"is_active"`
	IsCompleted *bool   `json:"is_completed"`
}

type TaskService interface {
	ListTasks(db *gorm.DB, userID uuid.UUID, from, to *time.Time) ([]models.Task, error)
	CreateTask(db *gorm.DB, userID uuid.UUID, in CreateTaskInput) (*models.Task, error)
	GetTask(db *gorm.DB, userID, id uuid.UUID) (*models.Task, error)
	UpdateTask(db *gorm.DB, userID, id uuid.UUID, in UpdateTaskInput) (*models.Task, error)
	DeleteTask(db *gorm.DB, userID, id uuid.UUID) error
	ReorderTasks(db *gorm.DB, userID uuid.UUID, ids []uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > 100 {
		return fmt.Errorf("%w: name must be at most 100 characters", ErrValidation)
	}
	return nil
}

func validateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > 500 {
		return fmt.Errorf("%w: description must be at most 500 characters", ErrValidation)
	}
	return nil
}

func validateColor(color string) error {
	if !colorRe.MatchString(color) {
		return fmt.Errorf("%w: color must match #rrggbb", ErrValidation)
	}
	return nil
}

// normalizeRange maps range bounds onto the stored completion representation.
// Completion dates live at 12:00 UTC, so a bound parsed from a bare
// YYYY-MM-DD (midnight UTC) must move to noon or the end day's rows fall
// outside `date <= ?`.
func normalizeRange(from, to *time.Time) (*time.Time, *time.Time) {
	if from != nil {
		f := dateutil.NoonUTC(*from)
		from = &f
	}
	if to != nil {
		t := dateutil.NoonUTC(*to)
		to = &t
	}
	return from, to
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, userID uuid.UUID, from, to *time.Time) ([]models.Task, error) {
	var tasks []models.Task

	from, to = normalizeRange(from, to)

	q := db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("sort_order asc, created_at asc")

	q = q.Preload("Completions", func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("date >= ?", *from)
		}
		if to != nil {
			db = db.Where("date <= ?", *to)
		}
		return db.Order("date asc")
	})

	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, userID uuid.UUID, in CreateTaskInput) (*models.Task, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if in.Color == "" {
		in.Color = models.DefaultTaskColor
	}
	if err := validateColor(in.Color); err != nil {
		return nil, err
	}

	var maxOrder *int
	if err := db.Model(&models.Task{}).
		Where("user_id = ?", userID).
		Select("max(sort_order)").
		Scan(&maxOrder).Error; err != nil {
		return nil, err
	}

	nextOrder := 0
	if maxOrder != nil {
		nextOrder = *maxOrder + 1
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Emoji:       in.Emoji,
		IsActive:    true,
		SortOrder:   nextOrder,
	}

	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskServiceImpl) GetTask(db *gorm.DB, userID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Completions").
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, userID, id uuid.UUID, in UpdateTaskInput) (*models.Task, error) {
	var task models.Task
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, err
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
		updates["description"] = *in.Description
	}
	if in.Color != nil {
		if err := validateColor(*in.Color); err != nil {
			return nil, err
		}
		updates["color"] = *in.Color
	}
	if in.Emoji != nil {
		updates["emoji"] = *in.Emoji
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.IsCompleted != nil {
		updates["is_completed"] = *in.IsCompleted
		if *in.IsCompleted {
			updates["completed_at"] = time.Now()
		} else {
			updates["completed_at"] = nil
		}
	}

	if len(updates) == 0 {
		return &task, nil
	}

	if err := db.Model(&task).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, userID, id uuid.UUID) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReorderTasks assigns sort order 0..N-1 by list position. The id list must
// be exactly the caller's active task set. The whole reassignment runs in
// one transaction so a failed update cannot leave a half-reordered board.
func (s *TaskServiceImpl) ReorderTasks(db *gorm.DB, userID uuid.UUID, ids []uuid.UUID) error {
	var current []uuid.UUID
	if err := db.Model(&models.Task{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("id", &current).Error; err != nil {
		return err
	}

	if len(ids) != len(current) {
		return fmt.Errorf("%w: task list must contain all %d active tasks", ErrValidation, len(current))
	}

	owned := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		owned[id] = true
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !owned[id] {
			return fmt.Errorf("%w: unknown task id %s", ErrValidation, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate task id %s", ErrValidation, id)
		}
		seen[id] = true
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&models.Task{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
