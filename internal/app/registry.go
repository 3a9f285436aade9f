package app

import (
	"database/sql"

	"leaveflow/internal/auth"
	"leaveflow/internal/balance"
	"leaveflow/internal/history"
	"leaveflow/internal/leave"
	"leaveflow/internal/messaging/kafka"
	"leaveflow/internal/shared/counter"
	"leaveflow/internal/user"

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
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	historyRepo := history.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	balanceService := balance.NewService(balanceRepo, rdb)
	leaveService := leave.NewServiceWithOutbox(gormDB, leaveRepo, userRepo, balanceService, historyRepo, counterRepo, outboxRepo)
	historyService := history.NewService(historyRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	historyHandler := history.NewHandler(historyService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		history.RegisterRoutes(api, historyHandler)
	}

	return nil
}
