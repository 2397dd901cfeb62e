package division

import (
	"go-employee/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	divisions := r.Group("/divisions")
	divisions.Use(middleware.AuthMiddleware())
	{
		divisions.GET("", middleware.RateLimitByUser(5, 20), handler.GetAll)
		divisions.GET("/:id", middleware.RateLimitByUser(5, 20), handler.GetById)
	}
}
