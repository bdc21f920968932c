package delivery

import (
	"go-logistics/internal/middleware"
	"go-logistics/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	deliveries := r.Group("/deliveries")
	deliveries.Use(middleware.AuthMiddleware())
	{
		deliveries.GET("", middleware.RBACAuthorize(rbacService, "delivery", "read"), h.GetAll)
		deliveries.GET("/:id", middleware.RBACAuthorize(rbacService, "delivery", "read"), h.GetByID)
		deliveries.POST("", middleware.RBACAuthorize(rbacService, "delivery", "create"), h.Create)

		deliveries.POST("/:id/transitions",
			middleware.RBACAuthorize(rbacService, "delivery", "update"),
			h.Transition,
		)

		// driver location pings arrive frequently; cap per user
		deliveries.POST("/:id/location",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "delivery", "update"),
			h.UpdateLocation,
		)

		deliveries.GET("/:id/checkpoints",
			middleware.RBACAuthorize(rbacService, "delivery", "read"),
			h.ListCheckpoints,
		)

		deliveries.GET("/:id/report",
			middleware.RBACAuthorize(rbacService, "delivery", "read"),
			h.GetReport,
		)

		deliveries.GET("/:id/ws",
			middleware.RBACAuthorize(rbacService, "delivery", "read"),
			h.Subscribe,
		)
	}
}
