package history

import (
	"leaveflow/internal/domain"
	"leaveflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	histories := r.Group("/leaves")
	histories.Use(middleware.AuthMiddleware())
	{
		histories.GET("/history/my", handler.GetMyHistory)
		histories.GET("/:id/history",
			middleware.RequireRole(domain.RoleAdmin),
			handler.GetLeaveHistory,
		)
	}
}
