package routes

import (
	"net/http"
	"time"

	"homeserve/handlers"
	"homeserve/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers user account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.DeviceDetailsMiddleware())
	{
		api.POST("/register", hb.User.InitiateRegistrationHandler)
		api.POST("/register/verify-otp", hb.User.VerifyRegistrationOTPHandler)
		api.POST("/register/finalize", hb.User.FinalizeRegistrationHandler)
		api.POST("/login", hb.User.AuthenticateUserHandler)

		// Protected routes (require authentication).
		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		protected.GET("/me", hb.User.GetProfileHandler)
		protected.PATCH("/me", hb.User.UpdateUserHandler)
		protected.DELETE("/me", hb.User.DeleteUserHandler)
		protected.PUT("/me/password", hb.User.UpdateUserPasswordHandler)
		protected.PUT("/me/fcm-token", hb.User.UpdateFCMTokenHandler)
		protected.GET("/me/devices", hb.User.GetUserDevicesHandler)
		protected.POST("/me/devices/sign-out-others", hb.User.SignOutOtherDevicesHandler)
		protected.DELETE("/me/devices/:deviceId", hb.User.RevokeUserAuthTokenHandler)
	}
}

// RegisterProviderRoutes registers provider account endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public endpoints: browse profiles, catalogues, and reviews.
		api.GET("/:id", hb.Provider.GetPublicProfileHandler)
		api.GET("/:id/services", hb.Provider.ListProviderServicesHandler)
		api.GET("/:id/reviews", hb.Review.ListProviderReviewsHandler)

		withDevice := api.Group("")
		withDevice.Use(middleware.DeviceDetailsMiddleware())
		withDevice.POST("/register", hb.Provider.RegisterProviderHandler)
		withDevice.POST("/login", hb.Provider.AuthenticateProviderHandler)

		protected := withDevice.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.GET("/me", hb.Provider.GetProviderProfileHandler)
		protected.PATCH("/me", hb.Provider.UpdateProviderHandler)
		protected.DELETE("/me", hb.Provider.DeleteProviderHandler)
		protected.PUT("/me/payout", hb.Provider.UpdatePayoutDetailsHandler)
		protected.PUT("/me/fcm-token", hb.Provider.UpdateProviderFCMTokenHandler)
		protected.POST("/me/kyp", hb.Provider.SubmitKYPHandler)
		protected.DELETE("/me/devices/:deviceId", hb.Provider.RevokeProviderAuthTokenHandler)
	}
}

// RegisterServiceRoutes registers catalogue endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		// Public browse.
		api.GET("", hb.Provider.BrowseServicesHandler)

		protected := api.Group("")
		protected.Use(middleware.DeviceDetailsMiddleware(), middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.GET("/mine", hb.Provider.ListMyServicesHandler)
		protected.POST("", hb.Provider.CreateServiceHandler)
		protected.PATCH("/:id", hb.Provider.UpdateServiceHandler)
		protected.DELETE("/:id", hb.Provider.DeleteServiceHandler)
	}
}

// RegisterBookingRoutes registers booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.DeviceDetailsMiddleware())
	{
		asUser := api.Group("")
		asUser.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		asUser.POST("/quote", hb.Booking.QuoteHandler)
		asUser.POST("", hb.Booking.CreateBookingHandler)
		asUser.GET("", hb.Booking.ListUserBookingsHandler)
		asUser.GET("/:id", hb.Booking.GetBookingHandler)
		asUser.POST("/:id/cancel", hb.Booking.CancelBookingHandler)

		asProvider := api.Group("/provider")
		asProvider.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		asProvider.GET("", hb.Booking.ListProviderBookingsHandler)
		asProvider.GET("/:id", hb.Booking.GetBookingHandler)
		asProvider.POST("/:id/confirm", hb.Booking.ConfirmBookingHandler)
		asProvider.POST("/:id/start", hb.Booking.StartBookingHandler)
		asProvider.POST("/:id/complete", hb.Booking.CompleteBookingHandler)
		asProvider.POST("/:id/cancel", hb.Booking.CancelBookingHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.DeviceDetailsMiddleware(), middleware.JWTAuthUserMiddleware(hb.UserRepo))
	{
		api.POST("", hb.Review.CreateReviewHandler)
		api.PATCH("/:id", hb.Review.UpdateReviewHandler)
		api.DELETE("/:id", hb.Review.DeleteReviewHandler)
	}
}

// RegisterPaymentRoutes registers invoice endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	api.Use(middleware.DeviceDetailsMiddleware(), middleware.JWTAuthUserMiddleware(hb.UserRepo))
	{
		api.GET("", hb.Payment.ListMyInvoicesHandler)
		api.GET("/:invoiceId", hb.Payment.GetInvoiceHandler)
		api.POST("/:invoiceId/confirm", hb.Payment.ConfirmCardPaymentHandler)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints for both
// roles.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	asUser := r.Group("/api/notifications")
	asUser.Use(middleware.DeviceDetailsMiddleware(), middleware.JWTAuthUserMiddleware(hb.UserRepo))
	{
		asUser.GET("", hb.Notification.ListNotificationsHandler)
		asUser.POST("/:id/read", hb.Notification.MarkReadHandler)
		asUser.POST("/read-all", hb.Notification.MarkAllReadHandler)
		asUser.GET("/unread-count", hb.Notification.UnreadCountHandler)
	}

	asProvider := r.Group("/api/provider-notifications")
	asProvider.Use(middleware.DeviceDetailsMiddleware(), middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
	{
		asProvider.GET("", hb.Notification.ListNotificationsHandler)
		asProvider.POST("/:id/read", hb.Notification.MarkReadHandler)
		asProvider.POST("/read-all", hb.Notification.MarkAllReadHandler)
		asProvider.GET("/unread-count", hb.Notification.UnreadCountHandler)
	}
}

// RegisterStorageRoutes registers file storage endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	api.Use(middleware.DeviceDetailsMiddleware(), middleware.JWTAuthUserMiddleware(hb.UserRepo))
	{
		api.POST("/:bucket", hb.Storage.UploadFileHandler)
		api.GET("/:bucket/:publicId/url", hb.Storage.GetSecureDownloadURLHandler)
		api.DELETE("/:bucket/:publicId", hb.Storage.DeleteFileHandler)
	}
}

// RegisterAdminRoutes registers back-office endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.AdminAuthMiddleware())
	{
		api.GET("/users", hb.Admin.GetAllUsersHandler)
		api.DELETE("/users/:id", hb.Admin.DeleteUserHandler)
		api.GET("/providers", hb.Admin.GetAllProvidersHandler)
		api.PUT("/providers/:id/verification", hb.Admin.SetVerificationStatusHandler)
		api.DELETE("/reviews/:id", hb.Admin.RemoveReviewHandler)
		api.GET("/health", hb.Admin.HealthHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID", "X-Device-Name"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
