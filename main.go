package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Philip2024394/website-massage--sub045/config"
	"github.com/Philip2024394/website-massage--sub045/database"
	bookingRepo "github.com/Philip2024394/website-massage--sub045/database/repository/booking"
	commissionRepo "github.com/Philip2024394/website-massage--sub045/database/repository/commission"
	providerRepo "github.com/Philip2024394/website-massage--sub045/database/repository/provider"
	"github.com/Philip2024394/website-massage--sub045/handlers"
	"github.com/Philip2024394/website-massage--sub045/middleware"
	"github.com/Philip2024394/website-massage--sub045/routes"
	"github.com/Philip2024394/website-massage--sub045/services/booking"
	"github.com/Philip2024394/website-massage--sub045/services/notification"
	"github.com/Philip2024394/website-massage--sub045/services/sweeper"
	"github.com/Philip2024394/website-massage--sub045/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(routes.CORSConfig())

	// repositories. The provider pool is read on every rebroadcast, so it
	// goes through the Redis-backed cache.
	bookings := bookingRepo.NewMongoBookingRepo()
	commissions := commissionRepo.NewMongoCommissionRepo()
	providers := providerRepo.NewCachedProviderRepo(
		providerRepo.NewMongoProviderRepo(), utils.GetCacheClient(), logger)

	// services.
	lifecycle := &booking.DefaultLifecycleService{
		Bookings:       bookings,
		Commissions:    commissions,
		Providers:      providers,
		Logger:         logger,
		ResponseWindow: config.ResponseWindow(),
	}

	broadcaster, err := notification.NewFCMBroadcaster(utils.FCMClient, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize broadcaster: %v", err)
	}

	authClient := utils.GetAuthCacheClient()
	sessionGuard := utils.NewSessionGuard(authClient, utils.ServiceSessionID)
	expirationSweeper := sweeper.New(sweeper.Config{
		Bookings:       bookings,
		Providers:      providers,
		Lifecycle:      lifecycle,
		Broadcaster:    broadcaster,
		Guard:          sessionGuard,
		Logger:         logger,
		Interval:       config.SweepInterval(),
		ResponseWindow: config.ResponseWindow(),
	})

	// handlers and routes.
	bookingHandler := handlers.NewBookingHandler(lifecycle)
	commissionHandler := handlers.NewCommissionHandler(lifecycle)
	authHandler := handlers.NewAuthHandler(authClient, config.AppConfig.ServiceAPIKey)
	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterAdminRoutes(router, commissionHandler)
	routes.RegisterAuthRoutes(router, authHandler)
	routes.RegisterHealthRoute(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Establish the service session the sweeper's guard checks, and keep it
	// fresh for as long as the process runs.
	serviceSession := utils.AuthSession{
		UserID:    utils.ServiceSessionID,
		Role:      "service",
		Status:    "active",
		CreatedAt: time.Now(),
	}
	if err := utils.SaveAuthSession(authClient, utils.ServiceSessionID, serviceSession); err != nil {
		logger.Sugar().Fatalf("failed to establish service session: %v", err)
	}
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := utils.SaveAuthSession(authClient, utils.ServiceSessionID, serviceSession); err != nil {
					logger.Warn("failed to refresh service session", zap.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	expirationSweeper.Start(ctx)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	expirationSweeper.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
}
