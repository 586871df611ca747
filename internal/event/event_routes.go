package event

import (
	"teampulse/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	events := r.Group("/events")
	events.Use(middleware.AuthMiddleware())
	{
		events.GET("", handler.GetAll)
		events.POST("", middleware.ManagerOnly(), middleware.Idempotency(rdb), handler.Create)
		events.GET("/:id/rsvps", handler.GetRsvps)
		events.POST("/:id/rsvp", handler.SubmitRsvp)
	}
}
