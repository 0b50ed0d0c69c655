package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"theater-booking-backend/internal/model"
	"theater-booking-backend/internal/scheduler"
)

type postBookingRequest struct {
	Date     string `json:"date" binding:"required"` // 2006-01-02
	Time     string `json:"time" binding:"required"` // 15:04
	RoomID   string `json:"room_id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PostBooking handles the POST /api/bookings request. The booking runs in
// the background; the response only acknowledges that it was accepted.
func (h *Handler) PostBooking(c *gin.Context) {
	var req postBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date/time must be YYYY-MM-DD and HH:MM"})
		return
	}

	_, err = h.scheduler.StartBookingProcess(model.BookingRequest{
		Time:   target,
		RoomID: req.RoomID,
		Credentials: model.Credentials{
			Username: req.Username,
			Password: req.Password,
		},
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": string(h.scheduler.GetStatus())})
}
