package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stayr/config"
	"stayr/jobs"
	"stayr/models"
	"stayr/routes"
	"stayr/services"
	"stayr/services/logger"
	"stayr/services/notification"
	"stayr/validator"
)

func migrateTables(app *config.App) {
	if err := app.DB.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Booking{},
		&models.RoomBooking{},
		&models.FlightBookingReference{},
		&models.PaymentInfo{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	app, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	validator.RegisterValidations()
	migrateTables(app)

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)
	sink := notification.NewMelodySink(app.Melody)

	broker := services.NewAFSClient(
		config.GetEnv("AFS_BASE_URL", "https://advanced-flights-system.replit.app"),
		os.Getenv("AFS_API_KEY"),
		10*time.Second,
	)

	authService := services.NewAuthService(services.AuthServiceOptions{
		DB:     app.DB,
		Logger: appLogger,
	})
	inventoryService := services.NewInventoryService(services.InventoryServiceOptions{
		DB:     app.DB,
		Logger: appLogger,
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		DB:        app.DB,
		Inventory: inventoryService,
		Broker:    broker,
		Sink:      sink,
		Logger:    appLogger,
	})
	lifecycleService := services.NewLifecycleService(services.LifecycleServiceOptions{
		DB:     app.DB,
		Broker: broker,
		Sink:   sink,
		Logger: appLogger,
	})

	jobs.SetBookingExpirer(lifecycleService)

	pendingHours := 24
	if parsed, err := strconv.Atoi(os.Getenv("PENDING_EXPIRY_HOURS")); err == nil && parsed > 0 {
		pendingHours = parsed
	}
	if err := jobs.InitCronJobs(app.Cron, time.Duration(pendingHours)*time.Hour); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(app.Router, app.Melody)

	routes.SetupRoutes(app.Router, routes.Deps{
		DB:         app.DB,
		Redis:      app.Redis,
		Cloudinary: app.Cloudinary,
		Auth:       authService,
		Inventory:  inventoryService,
		Booking:    bookingService,
		Lifecycle:  lifecycleService,
		Broker:     broker,
	})

	app.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := app.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
