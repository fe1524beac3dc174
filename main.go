package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spicevilla/spice-villa-api/config"
	"github.com/spicevilla/spice-villa-api/controllers"
	"github.com/spicevilla/spice-villa-api/middleware"
	"github.com/spicevilla/spice-villa-api/models"
	"github.com/spicevilla/spice-villa-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Spice Villa Orders API server...")

	// Load configuration (admin credentials, session secret, menu feed)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.DeliveryPerson{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Menu feed adapter
	services.InitMenuService(cfg.MenuSheetURL)

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all application routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg != nil && cfg.CORSAllowedOrigins != "" && cfg.CORSAllowedOrigins != "*" {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	router.Use(cors.New(corsConfig))

	// Public storefront
	router.GET("/", home)
	router.GET("/health", healthCheck)
	router.GET("/menu", controllers.GetMenu)
	router.GET("/cart", controllers.GetCart)
	router.POST("/place_order", controllers.PlaceOrder)
	router.GET("/myorders", controllers.MyOrders)
	router.POST("/myorders", controllers.MyOrders)
	router.GET("/api/order_status/:order_id", controllers.GetOrderStatus)

	// Admin console
	admin := router.Group("/admin")
	{
		admin.POST("/login", controllers.AdminLogin)
		admin.GET("/logout", controllers.AdminLogout)

		protected := admin.Group("", middleware.RequireRole(middleware.RoleAdmin))
		{
			protected.GET("/dashboard", controllers.AdminDashboard)
			protected.POST("/assign_delivery/:id", controllers.AssignDelivery)
			protected.POST("/update_status/:id", controllers.UpdateStatus)
			protected.POST("/add_delivery_person", controllers.AddDeliveryPerson)
			protected.GET("/delivery_persons", controllers.ListDeliveryPersons)
		}
	}

	// Delivery console
	delivery := router.Group("/delivery")
	{
		delivery.POST("/login", controllers.DeliveryLogin)
		delivery.GET("/logout", controllers.DeliveryLogout)

		protected := delivery.Group("", middleware.RequireRole(middleware.RoleDelivery))
		{
			protected.GET("/dashboard", controllers.DeliveryDashboard)
			protected.POST("/dashboard", controllers.ConfirmDelivery)
		}
	}

	return router
}

// home handles the landing page
func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome to Spice Villa",
	})
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Spice Villa Orders API is running",
	})
}
