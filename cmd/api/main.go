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
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-citas/internal/audit"
	"github.com/BruksfildServices01/agenda-citas/internal/config"
	dbpkg "github.com/BruksfildServices01/agenda-citas/internal/db"
	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/agenda-citas/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-citas/internal/logger"
	"github.com/BruksfildServices01/agenda-citas/internal/metrics"
	"github.com/BruksfildServices01/agenda-citas/internal/reminder"
	"github.com/BruksfildServices01/agenda-citas/internal/routes"
	"github.com/BruksfildServices01/agenda-citas/internal/timezone"
	"github.com/BruksfildServices01/agenda-citas/internal/tracer"
)

const auditBufferSize = 256

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	tp, err := tracer.Init(cfg.AppName, cfg.Tracing)
	if err != nil {
		zlog.Fatal("failed to init tracer", zap.Error(err))
	}

	db, err := dbpkg.NewDB(cfg.DB)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	if err := dbpkg.SeedAdmin(context.Background(), db, cfg.Admin, zlog); err != nil {
		zlog.Fatal("failed to seed admin", zap.Error(err))
	}

	m := metrics.NewCollector(cfg.AppName)
	clock := timezone.NewClock(cfg.Timezone)

	// --------------------------------------------------
	// Optional infrastructure
	// --------------------------------------------------

	var slotCache domain.SlotCache = domain.NoopSlotCache{}
	if cfg.Redis.Enabled() {
		client, err := cache.Connect(context.Background(), cfg.Redis.URL)
		if err != nil {
			zlog.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			slotCache = cache.NewAvailabilityCache(client, cfg.Redis.AvailabilityTTL)
		}
	}

	auditLogger := audit.New(db)
	sinks := []audit.Sink{auditLogger}
	if cfg.AMQP.Enabled() {
		amqpSink, err := audit.NewAMQPSink(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			zlog.Warn("amqp unavailable, audit events stay local", zap.Error(err))
		} else {
			defer amqpSink.Close()
			sinks = append(sinks, amqpSink)
		}
	}
	dispatcher := audit.NewDispatcher(zlog, m, auditBufferSize, sinks...)

	repo := infraRepo.NewAppointmentGormRepository(db)
	catalog := infraRepo.NewCachedCatalog(repo, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)

	// --------------------------------------------------
	// Reminders
	// --------------------------------------------------

	scanner := reminder.NewScanner(repo, cfg.Reminder.Lead, cfg.Reminder.Retention, zlog, m)

	var scheduler *reminder.Scheduler
	if cfg.Reminder.Enabled {
		scheduler = reminder.NewScheduler(scanner, cfg.Reminder.Schedule, clock.Location(), zlog)
		if err := scheduler.Start(); err != nil {
			zlog.Fatal("failed to start reminder scheduler", zap.Error(err))
		}
	}

	zlog.Info("booking policy",
		zap.Bool("conflicts_include_cancelled", cfg.Booking.ConflictIncludeCanceled),
		zap.Duration("slot_step", cfg.Booking.SlotStep),
		zap.String("timezone", clock.Location().String()),
	)

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	routes.RegisterRoutes(r, routes.Infra{
		DB:       db,
		Config:   cfg,
		Log:      zlog,
		Metrics:  m,
		Repo:     repo,
		Catalog:  catalog,
		Cache:    slotCache,
		Audit:    dispatcher,
		AuditLog: auditLogger,
		Scanner:  scanner,
		Clock:    clock,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}

	dispatcher.Close()

	if err := tp.Shutdown(ctx); err != nil {
		zlog.Error("tracer shutdown failed", zap.Error(err))
	}

	zlog.Info("server stopped")
}
