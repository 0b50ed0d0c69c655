package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"theater-booking-backend/config"
	"theater-booking-backend/internal/mw"
	"theater-booking-backend/internal/scheduler"
	"theater-booking-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, sched *scheduler.Scheduler, s store.Store, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(sched, s, cfg.Site.Rooms, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/bookings", handler.PostBooking)
		api.GET("/status", handler.GetStatus)

		api.GET("/settings", handler.GetSettings)
		api.PUT("/settings", handler.PutSettings)

		// the room list is static configuration, cheap to replay
		api.GET("/rooms", caching, handler.GetRooms)

		api.GET("/runs", handler.GetRuns)
		api.GET("/runs/:run_id/transitions", handler.GetRunTransitions)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
