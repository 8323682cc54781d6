package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"certform/internal/attestation"
	attestationhandler "certform/internal/attestation/handler"
	"certform/internal/audit"
	"certform/internal/health"
	"certform/internal/jwttoken"
	"certform/internal/learner"
	learnerhandler "certform/internal/learner/handler"
	"certform/internal/platform/config"
	"certform/internal/platform/httpserver"
	"certform/internal/platform/logger"
	"certform/internal/platform/metrics"
	"certform/internal/platform/postgres"
	"certform/internal/platform/redis"
	"certform/internal/progress"
	progresshandler "certform/internal/progress/handler"
	progressmetrics "certform/internal/progress/metrics"
	"certform/internal/tenant"
	httptransport "certform/internal/transport/http"
)

const auditBuffer = 256

// main wires dependencies, starts the audit worker and the HTTP server, and
// shuts both down gracefully. Business logic lives in the internal packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := tenant.NewCatalog()
	tenant.SeedCatalog(catalog)

	var (
		progressStore progress.Store
		learnerStore  learner.Store
	)
	probes := []health.Probe{}

	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Error("schema setup failed", "error", err)
			os.Exit(1)
		}
		progressStore = progress.NewPostgresStore(pool)
		learnerStore = learner.NewPostgresStore(pool)
		probes = append(probes, health.Probe{Name: "postgres", Check: pool.Ping})
		log.Info("using postgres stores")
	} else {
		progressStore = progress.NewInMemoryStore()
		learnerStore = learner.NewInMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		probes = append(probes, health.Probe{Name: "redis", Check: redisClient.Health})
	}
	probes = append(probes, health.Probe{Name: "self", Check: func(context.Context) error { return nil }})

	platformMetrics := metrics.New()
	progressMetrics := progressmetrics.New()

	auditStore := audit.NewInMemoryStore()
	auditPub := audit.NewPublisher(auditBuffer)
	auditWorker := audit.NewWorker(auditStore, auditPub.Events(), log)
	go auditWorker.Run(ctx)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "certform")
	jwtValidator := jwttoken.NewJWTServiceAdapter(jwtService)

	progressService := progress.NewService(progressStore, catalog, progressMetrics, auditPub)
	learnerService := learner.NewService(learnerStore, progressService, jwtService, cfg.TokenTTL, platformMetrics)
	attestationService := attestation.NewService(progressStore, learnerService, catalog, progressMetrics, auditPub)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:      log,
		Metrics:     platformMetrics,
		Learner:     learnerhandler.New(learnerService, catalog, jwtValidator, log),
		Progress:    progresshandler.New(progressService, jwtValidator, log),
		Attestation: attestationhandler.New(attestationService, jwtValidator, log),
		Health:      health.NewHandler(health.NewChain(log, probes...), cfg.CronSecret, log),
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server starting", "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
