package user

import (
	"leaveflow/internal/domain"
	"leaveflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		users.GET("", handler.GetAll)
		users.GET("/employees", handler.GetEmployees)
		users.GET("/:id", handler.GetByID)
		users.PATCH("/:id/status", handler.ToggleStatus)
	}
}
