package inventory

import (
	"go-logistics/internal/middleware"
	"go-logistics/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	items := r.Group("/inventory")
	items.Use(middleware.AuthMiddleware())
	{
		items.GET("", middleware.RBACAuthorize(rbacService, "inventory", "read"), h.GetAll)
		items.GET("/:id", middleware.RBACAuthorize(rbacService, "inventory", "read"), h.GetByID)
		items.POST("", middleware.RBACAuthorize(rbacService, "inventory", "create"), h.Create)
		items.PUT("/:id", middleware.RBACAuthorize(rbacService, "inventory", "update"), h.Update)
		items.DELETE("/:id", middleware.RBACAuthorize(rbacService, "inventory", "delete"), h.Delete)

		items.POST("/:id/adjustments", middleware.RBACAuthorize(rbacService, "inventory", "update"), h.AdjustStock)
		items.GET("/:id/adjustments", middleware.RBACAuthorize(rbacService, "inventory", "read"), h.ListAdjustments)
	}
}
