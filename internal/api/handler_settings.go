package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"theater-booking-backend/internal/scheduler"
)

type settingsResponse struct {
	StartTime          string `json:"start_time"`
	AlternativeEnabled bool   `json:"alternative_booking_enabled"`
	FallbackAttempts   int    `json:"fallback_attempts"`
}

// GetSettings handles the GET /api/settings request.
func (h *Handler) GetSettings(c *gin.Context) {
	settings := h.scheduler.GetCurrentSettings()
	c.JSON(http.StatusOK, settingsResponse{
		StartTime:          settings.StartTime.String(),
		AlternativeEnabled: settings.AlternativeEnabled,
		FallbackAttempts:   settings.FallbackAttempts,
	})
}

type putSettingsRequest struct {
	StartTime          string `json:"start_time" binding:"required"`
	AlternativeEnabled *bool  `json:"alternative_booking_enabled" binding:"required"`
	FallbackAttempts   int    `json:"fallback_attempts"`
}

// PutSettings handles the PUT /api/settings request. New values apply to any
// run that has not yet passed the relevant read point.
func (h *Handler) PutSettings(c *gin.Context) {
	var req putSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := scheduler.ParseTimeOfDay(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempts := req.FallbackAttempts
	if attempts <= 0 {
		attempts = h.scheduler.GetCurrentSettings().FallbackAttempts
	}

	h.scheduler.SetSettings(scheduler.Settings{
		StartTime:          start,
		AlternativeEnabled: *req.AlternativeEnabled,
		FallbackAttempts:   attempts,
	})

	c.Status(http.StatusNoContent)
}
