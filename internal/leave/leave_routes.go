package leave

import (
	"leaveflow/internal/domain"
	"leaveflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		leaves.POST("",
			middleware.RateLimitByUser(rate.Limit(2), 5),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("/my", handler.GetMy)
		leaves.GET("/balance/remaining", handler.Remaining)
		leaves.GET("/balance/used", handler.Used)
		leaves.GET("/:id", handler.GetById)
		leaves.DELETE("/:id", handler.Delete)

		admin := middleware.RequireRole(domain.RoleAdmin)
		leaves.GET("", admin, handler.GetAll)
		leaves.GET("/pending", admin, handler.GetPending)
		leaves.GET("/status/:status", admin, handler.GetByStatus)
		leaves.PUT("/:id/decision", admin, handler.Decide)
	}
}
