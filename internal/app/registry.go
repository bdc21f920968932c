package app

import (
	"database/sql"

	"go-logistics/internal/auth"
	"go-logistics/internal/company"
	"go-logistics/internal/customer"
	"go-logistics/internal/delivery"
	"go-logistics/internal/delivery/ws"
	"go-logistics/internal/employee"
	"go-logistics/internal/geo"
	"go-logistics/internal/hr"
	"go-logistics/internal/inventory"
	"go-logistics/internal/messaging/kafka"
	"go-logistics/internal/notification"
	"go-logistics/internal/rbac"
	"go-logistics/internal/rbac/infra"
	"go-logistics/internal/shared/counter"
	"go-logistics/internal/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	customerRepo := customer.NewRepository(gormDB)
	deliveryRepo := delivery.NewRepository(gormDB)
	deliveryReportRepo := delivery.NewReportRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	hrRepo := hr.NewRepository(gormDB)
	inventoryRepo := inventory.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	vehicleRepo := vehicle.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	rbacSyncService := rbac.NewSyncService(rbacRepo, rbacService)

	// --- Real-time + geo infrastructure ---
	hub := ws.NewHub()
	geoClient := geo.NewClient()

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	companyService := company.NewService(companyRepo)
	customerService := customer.NewService(customerRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	vehicleService := vehicle.NewService(vehicleRepo)
	inventoryService := inventory.NewService(db, inventoryRepo, counterRepo)
	notificationService := notification.NewService(notificationRepo)

	profileService := hr.NewProfileService(db, hrRepo)
	workRecordService := hr.NewWorkRecordService(db, hrRepo)
	paymentService := hr.NewPaymentServiceWithOutbox(db, hrRepo, outboxRepo)

	deliveryService := delivery.NewService(
		db,
		deliveryRepo,
		customerRepo,
		employeeRepo,
		vehicleService,
		counterRepo,
		outboxRepo,
		geoClient,
		hub,
	)
	deliveryReportService := delivery.NewReportService(deliveryRepo, deliveryReportRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	customerHandler := customer.NewHandler(customerService)
	deliveryHandler := delivery.NewHandler(deliveryService, deliveryReportService, hub)
	employeeHandler := employee.NewHandler(employeeService)
	hrHandler := hr.NewHandlerWithRedis(profileService, workRecordService, paymentService, rdb)
	inventoryHandler := inventory.NewHandler(inventoryService)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService, rbacSyncService)
	vehicleHandler := vehicle.NewHandler(vehicleService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler, rbacService)
		customer.RegisterRoutes(api, customerHandler, rbacService)
		delivery.RegisterRoutes(api, deliveryHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		hr.RegisterRoutes(api, hrHandler, rbacService, rdb)
		inventory.RegisterRoutes(api, inventoryHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		vehicle.RegisterRoutes(api, vehicleHandler, rbacService)
	}

	return nil
}
