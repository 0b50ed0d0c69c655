package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus handles the GET /api/status request. The frontend polls this
// while a booking run is in flight.
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": string(h.scheduler.GetStatus())})
}
