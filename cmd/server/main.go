package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/avatarctic/headless-blog/configs"
	"github.com/avatarctic/headless-blog/internal/application/services"
	"github.com/avatarctic/headless-blog/internal/core/ports"
	"github.com/avatarctic/headless-blog/internal/infrastructure/health"
	"github.com/avatarctic/headless-blog/internal/infrastructure/httpserver"
	"github.com/avatarctic/headless-blog/internal/infrastructure/metrics"
	"github.com/avatarctic/headless-blog/internal/infrastructure/redis"
	"github.com/avatarctic/headless-blog/internal/infrastructure/repositories"
	"github.com/avatarctic/headless-blog/internal/infrastructure/strapi"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting headless blog content service...")

	// Redis connects lazily on first use; an unreachable server only degrades caching.
	store := redis.NewStore(&cfg.Redis, logger)
	defer func() {
		if err := store.Disconnect(); err != nil {
			logger.WithError(err).Warn("Failed to close Redis connection")
		}
	}()

	cache := services.NewCacheService(store, &services.CacheServiceConfig{
		Prefix:     cfg.Cache.Prefix,
		DefaultTTL: cfg.Cache.DefaultTTL,
	}, metrics.CacheOperations(), logger)

	cms, err := strapi.NewClient(&cfg.CMS, strapi.ClientDeps{
		Logger:   logger,
		Requests: metrics.CMSRequests(),
		Duration: metrics.CMSRequestDuration(),
	})
	if err != nil {
		logger.Fatal("Failed to initialize CMS client:", err)
	}

	contentService := services.NewContentService(cms, cache, cfg.Locale.Default, logger)
	invalidationService := services.NewInvalidationService(cache, cfg.Navigation.Name, logger)

	rateLimiterConfig := &services.RateLimiterConfig{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         cfg.RateLimit.KeyPrefix,
	}
	rateLimiterService := services.NewRateLimiterService(repositories.NewRateLimitRepository(store), rateLimiterConfig, logger)

	hcSlice := []ports.HealthChecker{health.NewCacheHealthChecker(cache), health.NewCMSHealthChecker(cms)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		ContentService:      contentService,
		InvalidationService: invalidationService,
		Cache:               cache,
		RateLimiterService:  rateLimiterService,
		HealthCheckers:      hcSlice,
		DefaultLocale:       cfg.Locale.Default,
		SupportedLocales:    cfg.Locale.Supported,
		NavigationName:      cfg.Navigation.Name,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
