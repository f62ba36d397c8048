package handler

import (
	"errors"
	"net/http"

	"trip_logger/internal/store"

	"github.com/gin-gonic/gin"
)

// respondStoreError maps storage failures to status codes: an unreachable
// remote backend is 503, anything else is a plain 500 with a generic message.
func respondStoreError(c *gin.Context, err error, fallbackMsg string) {
	if errors.Is(err, store.ErrBackendUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage backend unavailable, please retry"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
}
