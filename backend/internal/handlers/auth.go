package handlers

import (
	"net/http"

	"habit-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService) *AuthHandler {
	return &AuthHandler{db: db, authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.LoginUser(h.db, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	access, refresh, err := h.authService.GenerateToken(h.db, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          user,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	access, refresh, expiresIn, err := h.authService.RefreshToken(h.db, req.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"expires_in":    expiresIn,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.RevokeToken(h.db, req.RefreshToken); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "logged out"})
}
