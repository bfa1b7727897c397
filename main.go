package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeserve/config"
	"homeserve/cron"
	"homeserve/database"
	bookingRepoPkg "homeserve/database/repository/booking"
	invoiceRepoPkg "homeserve/database/repository/invoice"
	notificationRepoPkg "homeserve/database/repository/notification"
	providerRepoPkg "homeserve/database/repository/provider"
	reviewRepoPkg "homeserve/database/repository/review"
	serviceRepoPkg "homeserve/database/repository/service"
	userRepoPkg "homeserve/database/repository/user"
	"homeserve/handlers"
	"homeserve/routes"
	"homeserve/services/booking"
	"homeserve/services/notification"
	"homeserve/services/payment"
	"homeserve/services/provider"
	"homeserve/services/review"
	"homeserve/services/tasks"
	"homeserve/services/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// Services.
	scheduler := tasks.NewAsynqScheduler()
	defer scheduler.Close()

	notificationService := &notification.DefaultNotificationService{
		Users:     userRepo,
		Providers: provRepo,
		Repo:      notificationRepo,
	}
	paymentProcessor := payment.NewStripePaymentHandler(logger, invoiceRepo, notificationService, scheduler)
	userService := &user.DefaultUserService{Repo: userRepo}
	providerService := &provider.DefaultProviderService{
		Repo:     provRepo,
		Services: serviceRepo,
		Storage:  storageService,
	}
	bookingService := &booking.DefaultBookingService{
		Bookings:  bookingRepo,
		Providers: provRepo,
		Services:  serviceRepo,
		Payments:  paymentProcessor,
		Notifier:  notificationService,
		Scheduler: scheduler,
	}
	reviewService := &review.DefaultReviewService{
		Reviews:   reviewRepo,
		Bookings:  bookingRepo,
		Providers: provRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		ProviderRepo: provRepo,

		User:         &handlers.UserHandler{Service: userService},
		Provider:     &handlers.ProviderHandler{Service: providerService},
		Booking:      &handlers.BookingHandler{Service: bookingService},
		Payment:      &handlers.PaymentHandler{Processor: paymentProcessor},
		Review:       &handlers.ReviewHandler{Service: reviewService},
		Notification: &handlers.NotificationHandler{Service: notificationService},
		Storage:      &handlers.StorageHandler{StorageSvc: storageService},
		Admin:        &handlers.AdminHandler{Users: userService, Providers: providerService, Reviews: reviewService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for reminders and receipts.
	cron.InitWorker(notificationService)

	// Dependency health snapshots for the admin endpoint.
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetOTPCacheClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
