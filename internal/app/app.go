package app

import (
	"os"

	"leaveflow/internal/history"
	"leaveflow/internal/leave"
	"leaveflow/internal/middleware"
	"leaveflow/internal/shared/connection"
	"leaveflow/internal/shared/counter"
	"leaveflow/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
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
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&user.User{},
		&leave.Leave{},
		&history.HistoryEntry{},
		&counter.LeaveCounter{},
	); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		zap.L().Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		zap.L().Info("redis connection established")
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	return registerModules(router, sqlDB, gormDB, redisClient)
}
