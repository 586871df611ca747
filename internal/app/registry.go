package app

import (
	"database/sql"

	"teampulse/internal/auth"
	"teampulse/internal/calendar"
	"teampulse/internal/event"
	"teampulse/internal/leave"
	"teampulse/internal/messaging/kafka"
	"teampulse/internal/notification"
	"teampulse/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	eventRepo := event.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(userRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	eventService := event.NewService(db, eventRepo, outboxRepo)
	notificationService := notification.NewService(notificationRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	eventHandler := event.NewHandlerWithRedis(eventService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	calendarHandler := calendar.NewHandler(leaveService, eventService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		event.RegisterRoutes(api, eventHandler, rdb)
		notification.RegisterRoutes(api, notificationHandler)
		calendar.RegisterRoutes(api, calendarHandler)
	}

	return nil
}
