package handlers

import (
	"net/http"
	"time"

	"habit-board/backend/internal/dateutil"
	"habit-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DailyNoteHandler struct {
	db               *gorm.DB
	dailyNoteService services.DailyNoteService
}

func NewDailyNoteHandler(db *gorm.DB, dailyNoteService services.DailyNoteService) *DailyNoteHandler {
	return &DailyNoteHandler{db: db, dailyNoteService: dailyNoteService}
}

func dateQuery(c *gin.Context) (time.Time, bool) {
	s := c.Query("date")
	if s == "" {
		respondError(c, http.StatusBadRequest, "date is required")
		return time.Time{}, false
	}
	date, err := dateutil.ParseDate(s)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date")
		return time.Time{}, false
	}
	return date, true
}

func (h *DailyNoteHandler) GetNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	note, err := h.dailyNoteService.GetByDate(h.db, userID, date)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, note)
}

func (h *DailyNoteHandler) SaveNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Date    string `json:"date" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	date, err := dateutil.ParseDate(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid date")
		return
	}

	note, err := h.dailyNoteService.Upsert(h.db, userID, date, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, note)
}

func (h *DailyNoteHandler) DeleteNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	if err := h.dailyNoteService.DeleteByDate(h.db, userID, date); err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "note deleted"})
}
