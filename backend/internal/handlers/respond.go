package handlers

import (
	"errors"
	"log"
	"net/http"

	"habit-board/backend/internal/middleware"
	"habit-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// currentUser reads the authenticated user id set by the auth middleware.
// A missing id means the route was wired without Auth, so answer 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps service errors onto the wire. Ownership misses
// surface as 404 the same as genuinely missing rows, so a caller cannot
// enumerate another user's ids.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrDuplicateEmail):
		respondError(c, http.StatusConflict, "email already exists")
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "not found")
	default:
		log.Printf("❌ Request failed: %v", err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
