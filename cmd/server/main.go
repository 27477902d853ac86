package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pousada-alegrim/service-reservations/internal/application"
	"github.com/pousada-alegrim/service-reservations/internal/clock"
	"github.com/pousada-alegrim/service-reservations/internal/config"
	"github.com/pousada-alegrim/service-reservations/internal/database"
	"github.com/pousada-alegrim/service-reservations/internal/events"
	"github.com/pousada-alegrim/service-reservations/internal/handler"
	"github.com/pousada-alegrim/service-reservations/internal/logger"
	"github.com/pousada-alegrim/service-reservations/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-reservations")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-reservations",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.IsDevelopment() {
		if err := db.AutoMigrate(&repository.RoomModel{}, &repository.GuestModel{}, &repository.ReservationModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DB, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer when brokers are configured
	var producer *events.Producer
	if cfg.Kafka.Enabled() {
		producer = events.NewProducer(cfg.Kafka.Brokers, log)
		defer func() { _ = producer.Close() }()
	} else {
		log.Info("event publishing disabled, no brokers configured")
	}

	// Initialize storage and application services
	store := repository.NewGormStore(db)
	clk := clock.System()
	roomSync := application.NewRoomSynchronizer(clk)

	reservationService := application.NewReservationService(store, roomSync, producer, log, clk, cfg.MaxStayNights)
	roomService := application.NewRoomService(store, roomSync, log, clk, cfg.MaxStayNights)
	guestService := application.NewGuestService(store, log)

	// Initialize HTTP handlers
	reservationHandler := handler.NewReservationHandler(reservationService)
	roomHandler := handler.NewRoomHandler(roomService, reservationService)
	guestHandler := handler.NewGuestHandler(guestService, reservationService)
	adminHandler := handler.NewAdminHandler(reservationService, roomService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(handler.Recovery(log))
	router.Use(handler.RequestID())
	router.Use(handler.CallerID())
	router.Use(handler.RequestLogger(log))

	// Register health check routes
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database handle", zap.Error(err))
	}
	healthHandler := handler.NewHealthHandler(sqlDB.Ping)
	healthHandler.RegisterRoutes(router)

	// Register routes
	reservationHandler.RegisterRoutes(&router.RouterGroup)
	roomHandler.RegisterRoutes(&router.RouterGroup)
	guestHandler.RegisterRoutes(&router.RouterGroup)
	adminHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-reservations...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-reservations stopped")
}
