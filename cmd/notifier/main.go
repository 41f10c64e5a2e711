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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anya-ship-it/cybermentor-platform/config"
	"github.com/anya-ship-it/cybermentor-platform/internal/middleware"
	"github.com/anya-ship-it/cybermentor-platform/internal/notifier"
	"github.com/anya-ship-it/cybermentor-platform/pkg/logger"
	"github.com/anya-ship-it/cybermentor-platform/pkg/mailer"
	"github.com/anya-ship-it/cybermentor-platform/pkg/metrics"
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
		ServiceName: "cybermentor-notifier",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Mailer.ResendAPIKey == "" {
		logger.Fatal("RESEND_API_KEY is required for the notifier service")
	}

	logger.Info("Starting CyberMentor notifier",
		zap.String("environment", cfg.Server.AppEnv))

	metrics.RecordInfrastructureMetrics()

	sender := mailer.NewResendSender(cfg.Mailer.ResendAPIKey, cfg.Mailer.FromAddress)
	handler := notifier.NewHandler(sender, cfg.Mailer.FromAddress)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.BodySizeLimitMiddleware(100 * 1024))

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Dispatch endpoints, gated by the shared secret
	authed := router.Group("/", notifier.AuthMiddleware(cfg.Notifier.AuthToken))
	authed.POST("/send", handler.Send)
	authed.POST("/send-login-link", handler.SendLoginLink)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Notifier.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Notifier started", zap.String("port", cfg.Notifier.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Notifier failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down notifier...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Notifier forced to shutdown", zap.Error(err))
	}

	logger.Info("Notifier exited")
}
