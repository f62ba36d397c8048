package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trip_logger/internal/config"
	"trip_logger/internal/handler"
	"trip_logger/internal/logger"
	"trip_logger/internal/middleware"
	"trip_logger/internal/service"
	"trip_logger/internal/store"
	"trip_logger/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	cfg := config.Load()
	logger.Setup(cfg.LogFile)

	// --- Storage backend ---
	// Decided once here and never revisited: remote document database when a
	// Mongo URI is configured, the local fallback file otherwise.
	var (
		st  store.Store
		err error
	)
	switch cfg.Backend() {
	case config.BackendRemote:
		st, err = store.NewMongoStore(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to connect to remote backend: %v", err)
		}
		log.Println("Storage: remote document database")
	default:
		st, err = store.NewLocalStore(cfg.LocalDBPath)
		if err != nil {
			log.Fatalf("Failed to open local store: %v", err)
		}
		log.Printf("Storage: local fallback at %s", cfg.LocalDBPath)
	}
	defer st.Close()

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpHours)

	// --- Initialize Services ---
	authService := service.NewAuthService(st, jwtUtil)
	userService := service.NewUserService(st)
	vehicleService := service.NewVehicleService(st)
	tripService := service.NewTripService(st)
	reportService := service.NewReportService()

	// Seed the default admin before the login surface comes up
	if err := authService.EnsureAdminExists(context.Background()); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	tripHandler := handler.NewTripHandler(tripService)
	reportHandler := handler.NewReportHandler(tripService, vehicleService, reportService)

	// --- Setup Gin Router ---
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	driverMW := middleware.DriverMiddleware()
	adminMW := middleware.AdminMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup)
	userHandler.RegisterUserRoutes(apiGroup, jwtAuthMW, adminMW)
	vehicleHandler.RegisterVehicleRoutes(apiGroup, jwtAuthMW, adminMW)
	tripHandler.RegisterTripRoutes(apiGroup, jwtAuthMW, driverMW, adminMW)
	reportHandler.RegisterReportRoutes(apiGroup, jwtAuthMW, adminMW)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": cfg.Backend()})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
