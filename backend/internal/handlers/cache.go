package handlers

import (
	"net/http"

	"habit-board/backend/internal/cache"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	Cache cache.Cache
}

func NewCacheHandler(cacheInstance cache.Cache) *CacheHandler {
	return &CacheHandler{Cache: cacheInstance}
}

// GetCacheStats returns cache statistics
// GET /api/cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	if h.Cache == nil {
		respondError(c, http.StatusServiceUnavailable, "cache is not initialized")
		return
	}
	respond(c, http.StatusOK, h.Cache.Stats())
}

// GetCacheHealth reports whether both cache levels are reachable
// GET /api/cache/health
func (h *CacheHandler) GetCacheHealth(c *gin.Context) {
	if h.Cache == nil {
		respond(c, http.StatusOK, gin.H{
			"status":  "unavailable",
			"healthy": false,
		})
		return
	}

	if err := h.Cache.Health(); err != nil {
		respond(c, http.StatusOK, gin.H{
			"status":  "degraded",
			"healthy": false,
			"message": err.Error(),
		})
		return
	}
	respond(c, http.StatusOK, gin.H{
		"status":  "healthy",
		"healthy": true,
	})
}

// ClearCache evicts every cached entry for the calling user
// DELETE /api/cache/clear
func (h *CacheHandler) ClearCache(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Cache == nil {
		respondError(c, http.StatusServiceUnavailable, "cache is not initialized")
		return
	}

	pattern := "tasks:user:" + userID.String() + ":*"
	if err := h.Cache.DeletePattern(pattern); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clear cache")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "cache cleared"})
}
