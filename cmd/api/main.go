package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/straye-as/kontragent-api/internal/auth"
	"github.com/straye-as/kontragent-api/internal/cache"
	"github.com/straye-as/kontragent-api/internal/config"
	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/http/handler"
	"github.com/straye-as/kontragent-api/internal/http/middleware"
	"github.com/straye-as/kontragent-api/internal/http/router"
	"github.com/straye-as/kontragent-api/internal/jobs"
	"github.com/straye-as/kontragent-api/internal/logger"
	"github.com/straye-as/kontragent-api/internal/repository"
	"github.com/straye-as/kontragent-api/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// In staging/production secrets come from Azure Key Vault, otherwise from the environment
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, logger.NewSQLLogger(log, cfg.Logging.SlowQueryThreshold()))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("search_path", cfg.Database.SearchPath),
	)

	// Lookup cache is optional; the service runs without it
	var lookupCache cache.LookupCache = cache.NopCache{}
	var redisCache *cache.RedisLookupCache
	if cfg.Cache.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Warn("Redis connection failed, continuing without lookup cache", zap.Error(err))
		} else {
			defer client.Close()
			redisCache = cache.NewRedisLookupCache(client, cfg.Cache.KeyPrefix, cfg.Cache.TTL())
			lookupCache = redisCache
			log.Info("Lookup cache enabled",
				zap.String("key_prefix", cfg.Cache.KeyPrefix),
				zap.Duration("ttl", cfg.Cache.TTL()),
			)
		}
	}

	// Repositories
	kontragentRepo := repository.NewKontragentRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)
	contractRepo := repository.NewContractRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)

	// Services
	activityLogger := service.NewActivityLogger(activityLogRepo, log)
	dispatcher := service.NewDispatcher(service.Services{
		Kontragents: service.NewKontragentService(db, kontragentRepo, operatorRepo, activityLogger, log),
		Contracts:   service.NewContractService(contractRepo, activityLogger, log),
		Lookups:     service.NewLookupService(lookupRepo, lookupCache, log),
		Notify:      service.NewNotifyService(activityLogger),
	}, log)

	// Middleware and handlers
	authMiddleware := auth.NewMiddleware(cfg.Auth.JWTSecret, cfg.Auth.DefaultActorID, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	kontragentHandler := handler.NewKontragentHandler(dispatcher, cfg.Auth.DefaultActorID, log)

	rt := router.NewRouter(cfg, log, db, authMiddleware, rateLimiter, kontragentHandler)
	if redisCache != nil {
		rt.AddHealthCheck("cache", func(r *http.Request) error {
			return redisCache.Ping(r.Context())
		})
	}

	var scheduler *jobs.Scheduler
	if cfg.Jobs.ActivityDigestEnabled {
		scheduler = jobs.NewScheduler(log)
		digest := jobs.NewActivityDigestJob(activityLogRepo, log, cfg.Jobs.ActivityDigestWindow())
		if err := scheduler.AddJob(jobs.ActivityDigestJobName, cfg.Jobs.ActivityDigestSchedule, digest.Run); err != nil {
			log.Error("Failed to register activity digest job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Activity digest job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
