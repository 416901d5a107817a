// Package main provides the API server entry point for the wallet roaster service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wallet-roaster/internal/adapter"
	"github.com/wallet-roaster/internal/api"
	"github.com/wallet-roaster/internal/config"
	"github.com/wallet-roaster/internal/logging"
	"github.com/wallet-roaster/internal/roast"
	"github.com/wallet-roaster/internal/service"
	"github.com/wallet-roaster/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.GetGlobalLogger().WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize structured logging
	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	// Connect to Redis. The cache is optional: snapshots are rebuilt from
	// upstream on every request when Redis is down.
	var cacheService *storage.CacheService
	var cacheHealth api.HealthChecker
	redis, err := storage.NewRedisCache(&cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, running without snapshot cache")
	} else {
		defer redis.Close()
		cacheService = storage.NewCacheService(redis, cfg.Cache.TTL)
		cacheHealth = redis
		logger.Info("Redis connection established")
	}

	// Upstream portfolio data client
	zerion, err := adapter.NewZerionClient(cfg.Zerion)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create portfolio data client")
	}

	// Roast providers: the rule engine always works, the generative provider
	// is only wired when an API key is configured
	rng := roast.NewTimeRand()
	engine := roast.NewEngine(rng)
	deterministic := roast.NewDeterministicProvider(engine)

	var generative roast.Provider
	if cfg.Gemini.APIKey != "" {
		gemini := adapter.NewGeminiClient(cfg.Gemini)
		generative = roast.NewGenerativeProvider(gemini, deterministic, rng, cfg.Roast.MinLatency)
		logger.WithField("model", cfg.Gemini.Model).Info("Generative roast provider enabled")
	} else {
		logger.Info("No generative API key configured, roasts are rule-engine only")
	}

	// Services
	var snapshotCache service.SnapshotCache
	if cacheService != nil {
		snapshotCache = cacheService
	}
	walletService := service.NewWalletService(zerion, snapshotCache)
	roastService := service.NewRoastService(walletService, deterministic, generative)

	serverConfig := &api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RateLimitRPS:    cfg.RateLimit.RequestsPerSec,
		RateLimitBurst:  cfg.RateLimit.Burst,
	}

	server := api.NewServer(serverConfig, walletService, roastService, cacheHealth)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
