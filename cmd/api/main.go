package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anya-ship-it/cybermentor-platform/config"
	"github.com/anya-ship-it/cybermentor-platform/internal/cache"
	"github.com/anya-ship-it/cybermentor-platform/internal/handlers"
	"github.com/anya-ship-it/cybermentor-platform/internal/middleware"
	"github.com/anya-ship-it/cybermentor-platform/internal/repository"
	"github.com/anya-ship-it/cybermentor-platform/internal/services"
	"github.com/anya-ship-it/cybermentor-platform/pkg/db"
	"github.com/anya-ship-it/cybermentor-platform/pkg/httpclient"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
	"github.com/anya-ship-it/cybermentor-platform/pkg/notify"
	"github.com/anya-ship-it/cybermentor-platform/pkg/profiling"
	"github.com/anya-ship-it/cybermentor-platform/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting CyberMentor API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.CollectorEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (no-op unless enabled)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	// Migrations run separately via the migrate command

	// Repositories
	mentorRepo := repository.NewMentorRepository(pool)
	requestRepo := repository.NewConnectionRequestRepository(pool)
	subscriberRepo := repository.NewSubscriberRepository(pool)
	blocklistRepo := repository.NewBlocklistRepository(pool)
	moderatorRepo := repository.NewModeratorRepository(pool)

	// Directory cache: populated synchronously before accepting requests so
	// the container is healthy only with a warm directory
	var directoryCache *cache.DirectoryCache
	if cfg.Cache.DisableDirectoryCache {
		logger.Warn("Directory cache is DISABLED - reading from database on every request")
	} else {
		directoryCache = cache.NewDirectoryCache(mentorRepo, cfg.Cache.DirectoryTTLSeconds)
		if err := directoryCache.Initialize(context.Background()); err != nil {
			logger.Fatal("Failed to initialize directory cache", zap.Error(err))
		}
	}

	// Notifier dispatch client
	httpClient := httpclient.NewStandardClient()
	notifyClient := notify.NewClient(cfg.Notifier.EndpointURL, cfg.Notifier.AuthToken, httpClient)

	// Services
	mentorService := services.NewMentorService(mentorRepo, directoryCache)
	contactService := services.NewContactService(requestRepo, blocklistRepo, subscriberRepo, mentorService, notifyClient, cfg)
	registrationService := services.NewRegistrationService(mentorRepo, subscriberRepo)
	adminAuthService := services.NewAdminAuthService(moderatorRepo, cfg, notifyClient)
	adminMentorsService := services.NewAdminMentorsService(mentorRepo, directoryCache)
	moderationService := services.NewModerationService(blocklistRepo, subscriberRepo, requestRepo)

	// Handlers
	mentorHandler := handlers.NewMentorHandler(mentorService)
	contactHandler := handlers.NewContactHandler(contactService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminAuthService)
	adminMentorsHandler := handlers.NewAdminMentorsHandler(adminMentorsService)
	adminBlocklistHandler := handlers.NewAdminBlocklistHandler(moderationService)
	adminSubscribersHandler := handlers.NewAdminSubscribersHandler(moderationService)
	adminRequestsHandler := handlers.NewAdminRequestsHandler(moderationService)

	directoryReady := func() bool { return true }
	if directoryCache != nil {
		directoryReady = directoryCache.IsReady
	}
	healthHandler := handlers.NewHealthHandler(pool, directoryReady)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only the configured origins, plus localhost in development
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for admin session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Per-IP rate limiters, tuned per endpoint type
	generalRateLimiter := middleware.NewRateLimiter(100, 200)        // 100 req/sec, burst of 200
	contactRateLimiter := middleware.NewRateLimiter(5, 10)           // 5 req/sec, burst of 10
	registrationRateLimiter := middleware.NewRateLimiter(0.00667, 3) // 2 req/5min, burst of 3
	adminAuthRateLimiter := middleware.NewRateLimiter(0.00667, 2)    // 2 req/5min, burst of 2

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// Public API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/mentors", generalRateLimiter.Middleware(), mentorHandler.GetMentors)
	v1.GET("/mentors/:id", generalRateLimiter.Middleware(), mentorHandler.GetMentorByID)
	v1.POST("/connection-requests", contactRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), contactHandler.SubmitConnectionRequest)
	v1.POST("/register-mentor", registrationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), registrationHandler.RegisterMentor)
	v1.POST("/register-mentee", registrationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), registrationHandler.RegisterMentee)

	// Admin routes (auth flow public, console behind JWT session)
	tokenManager := adminAuthService.GetTokenManager()
	if tokenManager == nil {
		logger.Warn("Admin routes disabled: JWT_SECRET not configured")
	} else {
		auth := router.Group("/api/v1/auth/admin")
		auth.POST("/request-login", adminAuthRateLimiter.Middleware(), adminAuthHandler.RequestLogin)
		auth.POST("/verify", adminAuthHandler.VerifyLogin)
		auth.POST("/logout", adminAuthHandler.Logout)
		auth.GET("/session", middleware.AdminSessionMiddleware(tokenManager, cfg.AdminSession.CookieDomain, cfg.AdminSession.CookieSecure), adminAuthHandler.GetSession)

		admin := router.Group("/api/v1/admin")
		admin.Use(middleware.AdminSessionMiddleware(tokenManager, cfg.AdminSession.CookieDomain, cfg.AdminSession.CookieSecure))

		admin.GET("/mentors", adminMentorsHandler.ListMentors)
		admin.POST("/mentors/:id/approve", adminMentorsHandler.ApproveMentor)
		admin.POST("/mentors/:id/reject", adminMentorsHandler.RejectMentor)

		admin.GET("/blocklist", adminBlocklistHandler.ListBlockedEmails)
		admin.POST("/blocklist", middleware.BodySizeLimitMiddleware(10*1024), adminBlocklistHandler.BlockEmail)
		admin.DELETE("/blocklist/:id", adminBlocklistHandler.UnblockEmail)

		admin.GET("/subscribers", adminSubscribersHandler.ListSubscribers)
		admin.DELETE("/subscribers/:id", adminSubscribersHandler.DeleteSubscriber)

		admin.GET("/requests", adminRequestsHandler.ListConnectionRequests)
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
