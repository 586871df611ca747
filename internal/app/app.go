package app

import (
	"context"
	"os"

	"teampulse/internal/event"
	"teampulse/internal/leave"
	"teampulse/internal/messaging/kafka"
	"teampulse/internal/middleware"
	"teampulse/internal/notification"
	"teampulse/internal/shared/connection"
	"teampulse/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := gormDB.AutoMigrate(
		&user.User{},
		&leave.LeaveRequest{},
		&event.Event{},
		&event.EventRsvp{},
		&notification.Notification{},
	); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	if err := kafka.EnsureOutboxTable(sqlDB); err != nil {
		return err
	}

	userRepo := user.NewRepository(gormDB)
	if err := user.SeedDemoUsers(context.Background(), userRepo, logger); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.ContextLogger(zap.L()))

	return registerModules(router, sqlDB, gormDB, redisClient)
}
