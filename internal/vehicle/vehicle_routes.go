package vehicle

import (
	"go-logistics/internal/middleware"
	"go-logistics/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthMiddleware())
	{
		vehicles.GET("", middleware.RBACAuthorize(rbacService, "vehicle", "read"), h.GetAll)
		vehicles.GET("/available", middleware.RBACAuthorize(rbacService, "vehicle", "read"), h.GetAvailable)
		vehicles.GET("/:id", middleware.RBACAuthorize(rbacService, "vehicle", "read"), h.GetByID)
		vehicles.POST("", middleware.RBACAuthorize(rbacService, "vehicle", "create"), h.Create)
		vehicles.PUT("/:id", middleware.RBACAuthorize(rbacService, "vehicle", "update"), h.Update)
		vehicles.DELETE("/:id", middleware.RBACAuthorize(rbacService, "vehicle", "delete"), h.Delete)
	}
}
