package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetRuns handles the GET /api/runs request: the journal of booking runs
// since the process started, newest first.
func (h *Handler) GetRuns(c *gin.Context) {
	runs, err := h.store.ListRuns(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// GetRunTransitions handles GET /api/runs/{run_id}/transitions.
func (h *Handler) GetRunTransitions(c *gin.Context) {
	runID, err := strconv.ParseInt(c.Param("run_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return
	}

	transitions, err := h.store.ListTransitions(c.Request.Context(), runID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transitions"})
		return
	}
	c.JSON(http.StatusOK, transitions)
}
