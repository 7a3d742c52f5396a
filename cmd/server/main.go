package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prazo/internal/calendar"
	calendarmetrics "prazo/internal/calendar/metrics"
	"prazo/internal/catalog"
	cataloghandler "prazo/internal/catalog/handler"
	"prazo/internal/deadline"
	"prazo/internal/deadline/handler"
	deadlinemetrics "prazo/internal/deadline/metrics"
	"prazo/internal/holiday"
	httpapi "prazo/internal/http"
	"prazo/internal/outage"
	"prazo/internal/platform/config"
	"prazo/internal/platform/httpserver"
	"prazo/internal/platform/logger"
	"prazo/internal/platform/postgres"
	"prazo/internal/platform/redis"
	"prazo/pkg/platform/audit"
	auditkafka "prazo/pkg/platform/audit/store/kafka"
	auditmemory "prazo/pkg/platform/audit/store/memory"
	auditworker "prazo/pkg/platform/audit/worker"
)

// main wires the stores, the calendar oracle, the deadline engine, and the
// HTTP transport. Business logic lives in the internal packages; everything
// here is assembly and lifecycle.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: postgres-backed when a database is configured, seeded memory
	// stores otherwise so the service runs standalone in development.
	var (
		holidayStore holiday.Store
		catalogStore catalog.Store
		outageStore  outage.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		holidayStore = holiday.NewPostgresStore(db)
		catalogStore = catalog.NewPostgresStore(db)
		outageStore = outage.NewPostgresStore(db)
	} else {
		log.Warn("no database configured; using seeded in-memory stores")

		year := time.Now().Year()
		memHolidays := holiday.NewInMemoryStore()
		memHolidays.SeedNational(year, year+1, year+2)
		holidayStore = memHolidays

		memCatalog := catalog.NewInMemoryStore()
		if err := catalog.Seed(memCatalog); err != nil {
			log.Error("catalog seed failed", "error", err)
			os.Exit(1)
		}
		catalogStore = memCatalog
		outageStore = outage.NewInMemoryStore()
	}

	// Optional redis read-through in front of the holiday table, shared
	// across replicas.
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		holidayStore = holiday.NewRedisStore(redisClient.Client, holidayStore, cfg.HolidayCacheTTL)
	}

	oracle := calendar.New(holidayStore,
		calendar.WithCacheTTL(cfg.HolidayCacheTTL),
		calendar.WithMetrics(calendarmetrics.New()),
	)

	// Audit trail: kafka when brokers are configured, in-process memory
	// store otherwise. The engine never blocks on either.
	var auditStore audit.Store
	if cfg.KafkaBrokers != "" {
		kafkaStore, err := auditkafka.New(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
	} else {
		auditStore = auditmemory.New()
	}

	auditCh := make(chan audit.Event, 256)
	worker := auditworker.New(auditStore, auditCh, log)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	service := deadline.NewService(catalogStore, oracle, outageStore,
		deadline.WithMetrics(deadlinemetrics.New()),
		deadline.WithLogger(log),
		deadline.WithAuditChannel(auditCh),
		deadline.WithStoreTimeout(cfg.StoreTimeout),
	)

	router := httpapi.NewRouter(httpapi.Handlers{
		Deadline: handler.New(service, log),
		Catalog:  cataloghandler.New(catalogStore, log),
	})
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting prazo", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	close(auditCh)
	<-workerDone
}
