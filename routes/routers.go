package routes

import (
	"context"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stayr/constants"
	"stayr/controllers"
	middlewares "stayr/middleware"
	"stayr/services"
)

// Deps gom các dependency mà router cần; main.go lắp ráp rồi đưa vào đây
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	Auth       *services.AuthService
	Inventory  *services.InventoryService
	Booking    *services.BookingService
	Lifecycle  *services.LifecycleService
	Broker     services.FlightBroker
}

func SetupRoutes(router *gin.Engine, deps Deps) {

	authController := controllers.NewAuthController(deps.Auth)
	hotelController := controllers.NewHotelController(deps.DB, deps.Redis)
	roomController := controllers.NewRoomController(deps.DB, deps.Redis, deps.Inventory)
	bookingController := controllers.NewBookingController(controllers.BookingControllerOptions{
		BookingService:   deps.Booking,
		LifecycleService: deps.Lifecycle,
		Redis:            deps.Redis,
	})
	flightController := controllers.NewFlightController(deps.Broker, deps.Lifecycle)
	notificationController := controllers.NewNotificationController(deps.DB)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authController.RegisterUser)
	v1.POST("/auth/login", authController.Login)
	v1.GET("/profile", middlewares.AuthMiddleware(), authController.GetProfile)
	v1.PUT("/profile", middlewares.AuthMiddleware(), authController.UpdateProfile)

	v1.GET("/hotels", hotelController.GetHotels)
	v1.GET("/hotels/search", hotelController.SearchHotels)
	v1.GET("/hotel/:id", hotelController.GetHotelDetail)
	v1.POST("/hotel", middlewares.AuthMiddleware(constants.RoleHotelOwner), hotelController.CreateHotel)
	v1.PUT("/hotel/:id", middlewares.AuthMiddleware(constants.RoleHotelOwner), hotelController.UpdateHotel)
	v1.DELETE("/hotel/:id", middlewares.AuthMiddleware(constants.RoleHotelOwner), hotelController.DeleteHotel)

	v1.GET("/hotel/:id/rooms", roomController.GetRoomTypes)
	v1.POST("/hotel/:id/rooms", middlewares.AuthMiddleware(constants.RoleHotelOwner), roomController.CreateRoomType)
	v1.PUT("/hotel/:id/rooms/:roomTypeId", middlewares.AuthMiddleware(constants.RoleHotelOwner), roomController.UpdateRoomType)
	v1.GET("/hotel/:id/availability", middlewares.AuthMiddleware(constants.RoleHotelOwner), roomController.GetAvailability)
	v1.PATCH("/hotel/:id/availability", middlewares.AuthMiddleware(constants.RoleHotelOwner), roomController.UpdateCapacity)

	v1.POST("/bookings/itinerary", middlewares.AuthMiddleware(), bookingController.CreateItinerary)
	v1.POST("/bookings/checkout", middlewares.AuthMiddleware(), bookingController.Checkout)
	v1.GET("/bookings", middlewares.AuthMiddleware(), bookingController.GetBookings)
	v1.GET("/bookings/:id", middlewares.AuthMiddleware(), bookingController.GetBookingDetail)
	v1.PUT("/bookings/:id", middlewares.AuthMiddleware(), bookingController.CancelBooking)
	v1.PUT("/hotel/booking", middlewares.AuthMiddleware(constants.RoleHotelOwner), bookingController.CancelRoomBooking)

	v1.GET("/flights/search", flightController.SearchFlights)
	v1.POST("/flights/cancel", middlewares.AuthMiddleware(), flightController.CancelFlight)

	v1.GET("/notifications", middlewares.AuthMiddleware(), notificationController.GetNotifications)
	v1.PUT("/notifications/read", middlewares.AuthMiddleware(), notificationController.MarkNotificationsRead)

	v1.POST("/img/upload", middlewares.AuthMiddleware(), func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := deps.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "uploads"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload successful",
			"url":     resp.SecureURL,
		})
	})
}
