package notification

import (
	"teampulse/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handler.GetMine)
		notifications.POST("", handler.Create)
		notifications.PATCH("/:id/read", handler.MarkRead)
		notifications.POST("/mark-all-read", handler.MarkAllRead)
		notifications.DELETE("/:id", handler.Delete)
	}
}
