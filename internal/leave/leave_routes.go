package leave

import (
	"teampulse/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.ManagerOnly(), handler.GetAll)
		leaves.GET("/my-leaves", handler.GetMine)
		leaves.POST("", middleware.Idempotency(rdb), handler.Create)
		leaves.PATCH("/:id", middleware.ManagerOnly(), handler.Decide)
	}
}
