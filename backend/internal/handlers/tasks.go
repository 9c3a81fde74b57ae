package handlers

import (
	"net/http"
	"time"

	"habit-board/backend/internal/dateutil"
	"habit-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

// parseRangeQuery reads optional startDate/endDate query params. Either may
// be absent; a present but malformed value is a 400.
func parseRangeQuery(c *gin.Context) (*time.Time, *time.Time, bool) {
	var from, to *time.Time
	if s := c.Query("startDate"); s != "" {
		t, err := dateutil.ParseDate(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid startDate")
			return nil, nil, false
		}
		from = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := dateutil.ParseDate(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid endDate")
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	from, to, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(h.db, userID, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var in services.CreateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(h.db, userID, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(h.db, userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.UpdateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(h.db, userID, id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(h.db, userID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "task deleted"})
}

func (h *TaskHandler) ReorderTasks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		TaskIDs []string `json:"taskIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(req.TaskIDs))
	for _, s := range req.TaskIDs {
		id, err := uuid.FromString(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid task id: "+s)
			return
		}
		ids = append(ids, id)
	}

	if err := h.taskService.ReorderTasks(h.db, userID, ids); err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "tasks reordered"})
}
