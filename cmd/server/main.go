package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	"github.com/mkovacevic/github-profile-analyzer/internal/analysis"
	"github.com/mkovacevic/github-profile-analyzer/internal/cache"
	"github.com/mkovacevic/github-profile-analyzer/internal/errors"
	"github.com/mkovacevic/github-profile-analyzer/internal/github"
	"github.com/mkovacevic/github-profile-analyzer/internal/monitoring"
	"github.com/mkovacevic/github-profile-analyzer/internal/profile"
	"github.com/mkovacevic/github-profile-analyzer/internal/ratelimit"
	"github.com/mkovacevic/github-profile-analyzer/internal/resolve"
	"github.com/mkovacevic/github-profile-analyzer/internal/types"
)

func main() {
	// .env is optional; real deployments configure through the environment
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	githubToken := os.Getenv("GITHUB_TOKEN")
	port := getEnvOrDefault("PORT", "8000")
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	cacheTTL := getEnvDurationSeconds("CACHE_TTL_SECONDS", time.Hour)
	cacheMaxEntries := getEnvIntOrDefault("CACHE_MAX_ENTRIES", 10000)

	if githubToken == "" {
		slog.Warn("GITHUB_TOKEN not set, unauthenticated requests are limited to 60/hour")
	}

	// Shared TTL cache for all remote data
	appCache := cache.New(cache.Options{
		DefaultTTL:    cacheTTL,
		MaxEntries:    cacheMaxEntries,
		SweepInterval: 5 * time.Minute,
	})
	defer appCache.Close()

	// Initialize monitoring system
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	// GitHub client with a conservative outbound pacer so bursts of
	// concurrent analyses do not slam the API
	client := github.NewClient(github.Config{
		Token:   githubToken,
		Cache:   appCache,
		Limiter: rate.NewLimiter(rate.Limit(10), 20),
		Metrics: appMetrics,
		Logger:  appLogger,
	})

	resolver := resolve.NewResolver(client)
	analyzer := analysis.NewAnalyzer()
	service := profile.NewService(client, resolver, analyzer, appCache)

	// Inbound per-IP rate limiting, Redis-backed when available
	redisClient, err := ratelimit.NewRedisClient(redisAddr, redisPassword, 0)
	if err != nil {
		slog.Warn("Continuing without Redis", "error", err)
	}
	defer redisClient.Close()

	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfig(), redisClient, appMetrics)

	r := gin.New()

	// Add monitoring middleware first (to capture all requests)
	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))

	// Add error handling middleware
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000"), ",")
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		stats := appMetrics.GetStats()
		stats["rate_limiter"] = limiter.GetStats()
		c.JSON(http.StatusOK, stats)
	})

	api := r.Group("/api")
	api.Use(ratelimit.IPRateLimitMiddleware(limiter, appMetrics))

	api.POST("/analyze", func(c *gin.Context) {
		// Add timeout context
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		var req types.AnalyzeRequest
		if err := c.BindJSON(&req); err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		req.Query = strings.TrimSpace(req.Query)
		if req.Query == "" {
			appErr := errors.NewValidationError("query cannot be empty")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		slog.Info("Starting analysis", "query", req.Query, "ip", c.ClientIP())
		start := time.Now()

		result, err := service.Analyze(ctx, req.Query)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		appLogger.AnalysisLogger(req.Query, result.Username, result.OverallScore, time.Since(start))

		c.JSON(http.StatusOK, result)
	})

	api.GET("/rate-limit", func(c *gin.Context) {
		c.JSON(http.StatusOK, service.RateLimitInfo())
	})

	api.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, service.CacheStats())
	})

	api.POST("/cache/clear", func(c *gin.Context) {
		service.ClearCache()
		c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port, "token_configured", githubToken != "")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvDurationSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}
