package auth

import (
	"leaveflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	// Credential endpoints get a per-IP limiter to slow brute force.
	limiter := middleware.RateLimitByIP(rate.Limit(5), 10)
	{
		authGroup.POST("/register", limiter, handler.Register)
		authGroup.POST("/login", limiter, handler.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
