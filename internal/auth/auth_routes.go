package auth

import (
	"go-employee/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
	r.POST("/logout", handler.Logout)
	r.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
}
