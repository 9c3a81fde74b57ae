package services

import (
	"fmt"
	"time"

	"habit-board/backend/internal/cache"
	"habit-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const taskListTTL = 60 * time.Second

// CachedTaskService decorates a TaskService with a read cache for task
// lists. Every mutation drops the owner's whole key space; with a 60s TTL
// that is cheaper than tracking which ranges a write touches.
type CachedTaskService struct {
	inner TaskService
	cache cache.Cache
}

func NewCachedTaskService(inner TaskService, c cache.Cache) *CachedTaskService {
	return &CachedTaskService{inner: inner, cache: c}
}

func taskListKey(userID uuid.UUID, from, to *time.Time) string {
	f, t := "-", "-"
	if from != nil {
		f = from.UTC().Format("2006-01-02")
	}
	if to != nil {
		t = to.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("tasks:user:%s:%s:%s", userID, f, t)
}

func (s *CachedTaskService) invalidate(userID uuid.UUID) {
	s.cache.DeletePattern(fmt.Sprintf("tasks:user:%s:*", userID))
}

func (s *CachedTaskService) ListTasks(db *gorm.DB, userID uuid.UUID, from, to *time.Time) ([]models.Task, error) {
	// Key and query must describe the same range: normalizing here means two
	// instants on the same calendar day share both the key and the result.
	from, to = normalizeRange(from, to)
	key := taskListKey(userID, from, to)

	var cached []models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.inner.ListTasks(db, userID, from, to)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, tasks, taskListTTL)
	return tasks, nil
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, userID uuid.UUID, in CreateTaskInput) (*models.Task, error) {
	task, err := s.inner.CreateTask(db, userID, in)
	if err == nil {
		s.invalidate(userID)
	}
	return task, err
}

func (s *CachedTaskService) GetTask(db *gorm.DB, userID, id uuid.UUID) (*models.Task, error) {
	return s.inner.GetTask(db, userID, id)
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, userID, id uuid.UUID, in UpdateTaskInput) (*models.Task, error) {
	task, err := s.inner.UpdateTask(db, userID, id, in)
	if err == nil {
		s.invalidate(userID)
	}
	return task, err
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, userID, id uuid.UUID) error {
	err := s.inner.DeleteTask(db, userID, id)
	if err == nil {
		s.invalidate(userID)
	}
	return err
}

func (s *CachedTaskService) ReorderTasks(db *gorm.DB, userID uuid.UUID, ids []uuid.UUID) error {
	err := s.inner.ReorderTasks(db, userID, ids)
	if err == nil {
		s.invalidate(userID)
	}
	return err
}

// CachedCompletionService keeps the task-list cache honest: preloaded
// completions ride inside cached task lists, so a toggle must evict them.
type CachedCompletionService struct {
	inner CompletionService
	cache cache.Cache
}

func NewCachedCompletionService(inner CompletionService, c cache.Cache) *CachedCompletionService {
	return &CachedCompletionService{inner: inner, cache: c}
}

func (s *CachedCompletionService) ListCompletions(db *gorm.DB, userID uuid.UUID, from, to time.Time) ([]models.TaskCompletion, error) {
	return s.inner.ListCompletions(db, userID, from, to)
}

func (s *CachedCompletionService) Toggle(db *gorm.DB, userID, taskID uuid.UUID, date time.Time, completed bool) (*models.TaskCompletion, error) {
	completion, err := s.inner.Toggle(db, userID, taskID, date, completed)
	if err == nil {
		s.cache.DeletePattern(fmt.Sprintf("tasks:user:%s:*", userID))
	}
	return completion, err
}
