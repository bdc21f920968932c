package hr

import (
	"go-logistics/internal/middleware"
	"go-logistics/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	profiles := r.Group("/payroll-profiles")
	profiles.Use(middleware.AuthMiddleware())
	{
		profiles.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetAllProfiles)
		profiles.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), h.CreateProfile)
		profiles.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetProfileByID)
		profiles.PUT("/:id", middleware.RBACAuthorize(rbacService, "payroll", "update"), h.UpdateProfile)
		profiles.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), h.DeleteProfile)

		profiles.GET("/:id/worked-days", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ListWorkedDays)
		profiles.POST("/:id/worked-days", middleware.RBACAuthorize(rbacService, "payroll", "update"), h.CreateWorkedDay)
		profiles.DELETE("/:id/worked-days/:dayId", middleware.RBACAuthorize(rbacService, "payroll", "update"), h.DeleteWorkedDay)

		profiles.GET("/:id/work-hours", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ListWorkHours)
		profiles.POST("/:id/work-hours", middleware.RBACAuthorize(rbacService, "payroll", "update"), h.CreateWorkHour)
		profiles.PUT("/:id/work-hours/:hourId", middleware.RBACAuthorize(rbacService, "payroll", "update"), h.UpdateWorkHour)
		profiles.DELETE("/:id/work-hours/:hourId", middleware.RBACAuthorize(rbacService, "payroll", "update"), h.DeleteWorkHour)

		profiles.POST("/:id/process-payment",
			middleware.RBACAuthorize(rbacService, "payroll", "settle"),
			middleware.Idempotency(rdb),
			h.ProcessPayment,
		)
		profiles.GET("/:id/payments", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ListPaymentHistories)
		profiles.GET("/:id/payments/:paymentId/work-histories", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ListWorkHistories)
	}
}
