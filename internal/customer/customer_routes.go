package customer

import (
	"go-logistics/internal/middleware"
	"go-logistics/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("", middleware.RBACAuthorize(rbacService, "customer", "read"), h.GetAll)
		customers.GET("/:id", middleware.RBACAuthorize(rbacService, "customer", "read"), h.GetByID)
		customers.POST("", middleware.RBACAuthorize(rbacService, "customer", "create"), h.Create)
		customers.PUT("/:id", middleware.RBACAuthorize(rbacService, "customer", "update"), h.Update)
		customers.DELETE("/:id", middleware.RBACAuthorize(rbacService, "customer", "delete"), h.Delete)
	}
}
