package middleware

import (
	"net/http"
	"strings"

	"habit-board/backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const UserIDKey = "user_id"

type AuthConfig struct {
	JWTSecret string
}

// Auth verifies the Bearer access token and puts the caller's user id into
// the request context. Every failure is the same generic 401.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(c)
			return
		}

		claims, err := utils.ParseJWT(tokenString, cfg.JWTSecret)
		if err != nil {
			unauthorized(c)
			return
		}

		// Refresh tokens must not pass as access tokens.
		if tokenType, _ := claims["type"].(string); tokenType == "refresh" {
			unauthorized(c)
			return
		}

		userIDStr, _ := claims["user_id"].(string)
		userID, err := uuid.FromString(userIDStr)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by Auth.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "unauthorized",
	})
}
