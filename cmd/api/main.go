package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/garage-scheduler/internal/audit"
	"github.com/BruksfildServices01/garage-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/garage-scheduler/internal/db"
	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/garage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/garage-scheduler/internal/lock"
	"github.com/BruksfildServices01/garage-scheduler/internal/logger"
	"github.com/BruksfildServices01/garage-scheduler/internal/routes"
	"github.com/BruksfildServices01/garage-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/garage-scheduler/internal/usecase/appointment"
)

func main() {

	cfg := config.Load()

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	if !timezone.IsValid(cfg.ShopTimezone) {
		zl.Warn("unknown shop timezone, using UTC", zap.String("timezone", cfg.ShopTimezone))
	}

	policy, err := ucAppointment.NewPolicy(
		cfg.ShopTimezone,
		cfg.OpeningTime,
		cfg.ClosingTime,
		cfg.SlotStepMinutes,
		cfg.DefaultDurationMinutes,
		cfg.UnassignedPolicy,
	)
	if err != nil {
		zl.Fatal("invalid shop schedule", zap.Error(err))
	}

	// ======================================================
	// STORE
	// ======================================================
	var (
		db    *gorm.DB
		repo  domain.Repository
		sinks []audit.Sink
	)

	switch cfg.StoreDriver {
	case "memory":
		zl.Warn("using in-memory store, data is lost on restart")
		repo = infraRepo.NewMemoryRepository()
	default:
		db, err = dbpkg.NewDB(cfg, zl)
		if err != nil {
			zl.Fatal("database unavailable", zap.Error(err))
		}
		repo = infraRepo.NewAppointmentGormRepository(db)
		sinks = append(sinks, audit.New(db))
	}

	// ======================================================
	// LOCKING
	// ======================================================
	var (
		rdb    *redis.Client
		locker lock.Locker = lock.NopLocker{}
	)

	if cfg.RedisAddr != "" {
		rdb, err = lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zl.Fatal("redis unavailable", zap.Error(err))
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait, zl)
	}

	// ======================================================
	// EVENTS
	// ======================================================
	if cfg.KafkaBrokers != "" {
		kafkaSink := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}

	events := audit.NewDispatcher(zl, sinks...)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Log:       zl,
		Repo:      repo,
		Locker:    locker,
		Events:    events,
		Policy:    policy,
		JWTSecret: cfg.JWTSecret,
		RateLimit: cfg.RateLimitPerMinute,
		DB:        db,
		Redis:     rdb,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}

	events.Close()
}
