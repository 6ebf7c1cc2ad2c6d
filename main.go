package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"contactly-be/internal/cache"
	"contactly-be/internal/config"
	"contactly-be/internal/controllers"
	"contactly-be/internal/database"
	"contactly-be/internal/jwt"
	"contactly-be/internal/logger"
	"contactly-be/internal/middleware"
	"contactly-be/internal/repository"
	"contactly-be/internal/service"
	"contactly-be/internal/validation"
	"contactly-be/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, cfg.DBConnectAttempts)
	if err != nil {
		logg.Fatal("failed to connect to database", "error", err)
	}

	if err := database.RunMigrations(ctx, db, migrations.FS); err != nil {
		db.Close()
		logg.Fatal("failed to run migrations", "error", err)
	}

	// Redis is optional; continue without cache if it is unset or unavailable
	var contactCache cache.ContactCache
	if cfg.RedisURL != "" {
		contactCache, err = cache.NewRedisCache(ctx, cfg.RedisURL, cfg.ContactCacheTTL)
		if err != nil {
			logg.Warn("continuing without cache", "error", err)
			contactCache = nil
		} else {
			logg.Info("connected to Redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.TokenTTL())
	validator := validation.New()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, validator, cfg.BcryptCost)
	contactService := service.NewContactService(contactRepo, contactCache, validator, logg)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, logg)
	contactController := controllers.NewContactController(contactService, logg)
	qrcodeController := controllers.NewQRCodeController(contactService, logg)

	checks := map[string]controllers.HealthCheck{"database": db.PingContext}
	if contactCache != nil {
		checks["cache"] = contactCache.Ping
	}
	healthController := controllers.NewHealthController(checks, logg)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logg), middleware.CORS(cfg.CORSOrigins))

	// Health check endpoint (no rate limiting)
	router.GET("/health", healthController.Check)

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		api.POST("/register", authRateLimiter.LimitMiddleware(), authController.Register)
		api.POST("/login", authRateLimiter.LimitMiddleware(), authController.Login)

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService, authService, logg))
		{
			protected.GET("/me", authController.Me)
			protected.PUT("/change-password", authController.ChangePassword)

			protected.POST("/contact", contactController.Create)
			protected.GET("/mycontacts", contactController.List)
			protected.GET("/contact/:id", contactController.Get)
			protected.GET("/contact/:id/qrcode", qrcodeController.GenerateQRCode)
			protected.PUT("/contact", contactController.Update)
			protected.DELETE("/contact/:id", contactController.Delete)
			protected.PATCH("/favorite/:id", contactController.ToggleFavorite)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	runErr := g.Wait()

	closeErr := db.Close()
	if contactCache != nil {
		closeErr = multierr.Append(closeErr, contactCache.Close())
	}

	if err := multierr.Combine(runErr, closeErr); err != nil {
		logg.Fatal("server stopped with error", "error", err)
	}
	logg.Info("server stopped")
}
