package notification

import (
	"go-logistics/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RateLimitByUser(2, 10), h.List)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}
