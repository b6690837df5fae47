package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/salon/internal/container"
	"github.com/joshua-takyi/salon/internal/handlers"
	"github.com/joshua-takyi/salon/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	cfg := container.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.SecureHeaders())

	bookings := container.BookingService
	feedback := container.FeedbackService
	gallery := container.GalleryService

	v1 := r.Group("/api/v1")
	v1.GET("/health", handlers.Health(container.Repo))

	api := v1.Group("")
	api.Use(middleware.RateLimit(container.RateCounter, cfg.RateLimit, cfg.RateWindow, container.Logger))
	{
		api.GET("/services", handlers.ListServices(bookings))
		api.GET("/bookings", handlers.ListBookings(bookings))
		api.GET("/bookings/retrieve", handlers.ListBookings(bookings))
		api.POST("/bookings", handlers.CreateBooking(bookings))
		api.GET("/check-slot", handlers.CheckSlot(bookings))
		api.GET("/availability", handlers.Availability(bookings))
		api.GET("/unavailable-slots", handlers.UnavailableSlots(bookings))
		api.POST("/feedback", handlers.SubmitFeedback(feedback))
		api.GET("/gallery", handlers.ListGallery(gallery))
		api.POST("/admin/login", handlers.AdminLogin(container.AuthService))
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(container.AuthService, container.Logger))
	{
		admin.GET("/me", handlers.AdminProfile())
		admin.GET("/bookings", handlers.ListBookings(bookings))
		admin.PUT("/bookings/:id/status", handlers.UpdateBookingStatus(bookings))
		admin.DELETE("/bookings/:id", handlers.DeleteBooking(bookings))
		admin.GET("/feedback", handlers.ListFeedback(feedback))
		admin.DELETE("/feedback/:id", handlers.DeleteFeedback(feedback))
		admin.POST("/cleanup", handlers.RunCleanup(container.Sweeper))
		admin.POST("/gallery", handlers.AddGalleryImage(gallery))
		admin.DELETE("/gallery/:id", handlers.DeleteGalleryImage(gallery))
	}

	return r
}
