package main

import (
	"log"
	"os"

	"partner-portal-api/config"
	"partner-portal-api/controllers"
	"partner-portal-api/middleware"
	"partner-portal-api/monitor"
	"partner-portal-api/routes"
	"partner-portal-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database; every service receives this handle explicitly.
	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer config.CloseDB(db)

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire services and controllers
	notifier := services.NewNotifier()
	accounts := services.NewAccountService(db, notifier)
	projects := services.NewProjectService(db)
	updates := services.NewUpdateRequestService(db)
	statistics := services.NewStatisticsService(db)

	api := routes.API{
		DB:             db,
		Auth:           controllers.NewAuthController(accounts),
		Organizations:  controllers.NewOrganizationController(accounts),
		Projects:       controllers.NewProjectController(projects),
		UpdateRequests: controllers.NewUpdateRequestController(updates),
		Statistics:     controllers.NewStatisticsController(statistics),
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.LoggerWithWriter(config.LogWriter))

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Operator status page
	monitor.RegisterMonitorPage(router)

	// Setup routes
	routes.SetupRoutes(router, api)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if ginMode == "release" {
		log.Printf("Running in production mode")
	} else {
		log.Printf("Running in development mode")
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
