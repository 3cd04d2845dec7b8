package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/auth"
	"github.com/rentalhub/rentalhub-api/internal/config"
	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/handlers"
	"github.com/rentalhub/rentalhub-api/internal/middleware"
	"github.com/rentalhub/rentalhub-api/internal/repository"
	"github.com/rentalhub/rentalhub-api/internal/services"
	"github.com/rentalhub/rentalhub-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}
	notifier := services.NewNotifier()
	paymentRepo := repository.NewPaymentRepository(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(tokens, store)
	propertyHandler := handlers.NewPropertyHandler(store)
	leaseHandler := handlers.NewLeaseHandler(store)
	maintenanceHandler := handlers.NewMaintenanceHandler(store, notifier)
	invoiceHandler := handlers.NewInvoiceHandler(notifier)
	paymentHandler := handlers.NewPaymentHandler(paymentRepo, notifier)
	notificationHandler := handlers.NewNotificationHandler()
	dashboardHandler := handlers.NewDashboardHandler()

	// Initialize Gin router
	r := gin.Default()
	requireAuth := middleware.RequireAuth(tokens)

	// Liveness endpoints (public)
	r.GET("/status", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/health/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Auth routes (public)
	r.POST("/token", authHandler.Login)
	r.POST("/users/", authHandler.Register)

	// User routes (protected)
	users := r.Group("/users", requireAuth)
	{
		users.GET("/me/", authHandler.Me)
		users.PUT("/me/", authHandler.UpdateMe)
		users.POST("/me/profile-image/", authHandler.UploadProfileImage)
		users.GET("/search/", authHandler.SearchUsers)
	}

	// Property routes (protected)
	properties := r.Group("/properties", requireAuth)
	{
		properties.GET("/", propertyHandler.ListProperties)
		properties.POST("/", propertyHandler.CreateProperty)
		properties.GET("/:id/", propertyHandler.GetProperty)
		properties.PUT("/:id/", propertyHandler.UpdateProperty)
		properties.POST("/:id/images/", propertyHandler.UploadImage)
		properties.POST("/:id/documents/", propertyHandler.UploadDocument)
		properties.GET("/:id/statistics/", propertyHandler.Statistics)
	}

	// Lease routes (protected)
	leases := r.Group("/leases", requireAuth)
	{
		leases.GET("/", leaseHandler.ListLeases)
		leases.POST("/", leaseHandler.CreateLease)
		leases.GET("/:id/", leaseHandler.GetLease)
		leases.PUT("/:id/", leaseHandler.UpdateLease)
		leases.POST("/:id/document/", leaseHandler.UploadDocument)
	}

	// Maintenance routes (protected)
	maintenance := r.Group("/maintenance-requests", requireAuth)
	{
		maintenance.GET("/", maintenanceHandler.ListRequests)
		maintenance.POST("/", maintenanceHandler.CreateRequest)
		maintenance.GET("/:id/", maintenanceHandler.GetRequest)
		maintenance.PUT("/:id/", maintenanceHandler.UpdateRequest)
		maintenance.POST("/:id/comments/", maintenanceHandler.AddComment)
		maintenance.GET("/:id/comments/", maintenanceHandler.ListComments)
		maintenance.POST("/:id/images/", maintenanceHandler.UploadImage)
	}

	// Invoice routes (protected)
	invoices := r.Group("/invoices", requireAuth)
	{
		invoices.GET("/", invoiceHandler.ListInvoices)
		invoices.POST("/", invoiceHandler.CreateInvoice)
		invoices.GET("/:id/", invoiceHandler.GetInvoice)
		invoices.PUT("/:id/", invoiceHandler.UpdateInvoice)
	}

	// Payment routes (protected)
	payments := r.Group("/payments", requireAuth)
	{
		payments.GET("/", paymentHandler.ListPayments)
		payments.POST("/", paymentHandler.CreatePayment)
		payments.GET("/:id/", paymentHandler.GetPayment)
	}

	// Notification routes (protected)
	notifications := r.Group("/notifications", requireAuth)
	{
		notifications.GET("/", notificationHandler.ListNotifications)
		notifications.PUT("/read-all/", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read/", notificationHandler.MarkRead)
	}

	// Dashboard routes (protected)
	dashboard := r.Group("/dashboard", requireAuth)
	{
		dashboard.GET("/landlord-summary/", dashboardHandler.LandlordSummary)
		dashboard.GET("/tenant-summary/", dashboardHandler.TenantSummary)
		dashboard.GET("/property-manager-summary/", dashboardHandler.PropertyManagerSummary)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
