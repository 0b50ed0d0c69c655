package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"theater-booking-backend/internal/scheduler"
	"theater-booking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	scheduler *scheduler.Scheduler
	store     store.Store
	rooms     map[string]string
	webpush   *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(sched *scheduler.Scheduler, s store.Store, rooms map[string]string, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		scheduler: sched,
		store:     s,
		rooms:     rooms,
		webpush:   webpushOptions,
	}
}
