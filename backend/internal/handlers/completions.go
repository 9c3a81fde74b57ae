package handlers

import (
	"net/http"

	"habit-board/backend/internal/dateutil"
	"habit-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CompletionHandler struct {
	db                *gorm.DB
	completionService services.CompletionService
}

func NewCompletionHandler(db *gorm.DB, completionService services.CompletionService) *CompletionHandler {
	return &CompletionHandler{db: db, completionService: completionService}
}

func (h *CompletionHandler) ListCompletions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		respondError(c, http.StatusBadRequest, "startDate and endDate are required")
		return
	}
	from, err := dateutil.ParseDate(startStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid startDate")
		return
	}
	to, err := dateutil.ParseDate(endStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid endDate")
		return
	}

	completions, err := h.completionService.ListCompletions(h.db, userID, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, completions)
}

func (h *CompletionHandler) ToggleCompletion(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		TaskID    string `json:"taskId" binding:"required"`
		Date      string `json:"date" binding:"required"`
		Completed *bool  `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	taskID, err := uuid.FromString(req.TaskID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid taskId")
		return
	}
	date, err := dateutil.ParseDate(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date")
		return
	}

	completion, err := h.completionService.Toggle(h.db, userID, taskID, date, *req.Completed)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if completion == nil {
		// completed=false removes the row; there is nothing to echo back.
		respond(c, http.StatusOK, gin.H{"completed": false})
		return
	}
	respond(c, http.StatusOK, completion)
}
