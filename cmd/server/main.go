package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sushanth105/busResSys/internal/config"
	"github.com/Sushanth105/busResSys/internal/database"
	"github.com/Sushanth105/busResSys/internal/handlers"
	"github.com/Sushanth105/busResSys/internal/middleware"
	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/Sushanth105/busResSys/internal/services"
	"github.com/Sushanth105/busResSys/pkg/jwt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Bus Reservation Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	if cfg.Database.Migrate {
		logger.Info("Applying database schema...")
		if err := database.Migrate(db); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Info("Database schema up to date")
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	userRepository := database.NewUserRepository(db)
	refreshTokenRepository := database.NewRefreshTokenRepository(db)
	busRepository := database.NewBusRepository(db.DB)
	seatRepository := database.NewSeatRepository(db.DB)
	routeRepository := database.NewRouteRepository(db)
	tripRepository := database.NewTripRepository(db.DB)
	tripSeatRepository := database.NewTripSeatRepository(db.DB)
	bookingRepository := database.NewBookingRepository(db.DB)

	authService := services.NewAuthService(
		userRepository,
		refreshTokenRepository,
		jwtService,
		cfg.Security.BcryptCost,
		logger,
	)
	bookingService := services.NewBookingService(
		userRepository,
		tripRepository,
		busRepository,
		routeRepository,
		seatRepository,
		tripSeatRepository,
		bookingRepository,
		logger,
	)
	ticketService := services.NewTicketService(bookingService)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userRepository)
	busHandler := handlers.NewBusHandler(busRepository, seatRepository)
	routeHandler := handlers.NewRouteHandler(routeRepository)
	tripHandler := handlers.NewTripHandler(tripRepository, tripSeatRepository, busRepository, routeRepository)
	bookingHandler := handlers.NewBookingHandler(bookingService, ticketService)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)

			// Protected routes (require JWT authentication)
			protected := auth.Group("")
			protected.Use(middleware.AuthMiddleware(jwtService))
			{
				protected.POST("/logout", authHandler.Logout)
			}
		}

		// User routes (protected)
		user := v1.Group("/user")
		user.Use(middleware.AuthMiddleware(jwtService))
		{
			user.GET("/profile", authHandler.GetProfile)
		}

		// Bus routes
		buses := v1.Group("/buses")
		{
			buses.GET("/:id", busHandler.GetBus)
			buses.GET("/:id/seats", busHandler.GetBusSeats)
			buses.GET("/number/:number", busHandler.GetBusByNumber)

			admin := buses.Group("")
			admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole(string(models.RoleAdmin)))
			{
				admin.POST("", busHandler.CreateBus)
			}
		}

		// Route routes
		routes := v1.Group("/routes")
		{
			routes.GET("/search", routeHandler.FindRoute)
			routes.GET("/:id", routeHandler.GetRoute)

			admin := routes.Group("")
			admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole(string(models.RoleAdmin)))
			{
				admin.POST("", routeHandler.CreateRoute)
			}
		}

		// Trip routes
		trips := v1.Group("/trips")
		{
			trips.GET("/search", tripHandler.SearchTrips)
			trips.GET("/:id", tripHandler.GetTrip)
			trips.GET("/:id/seats", tripHandler.GetTripSeats)

			admin := trips.Group("")
			admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole(string(models.RoleAdmin)))
			{
				admin.POST("", tripHandler.CreateTrip)
			}
		}

		// Booking routes (all protected)
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware(jwtService))
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.GetBookings)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
			bookings.GET("/:id/ticket", bookingHandler.GetTicket)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
