package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/config"
	"github.com/kailas-cloud/radar/internal/db"
	"github.com/kailas-cloud/radar/internal/db/memory"
	dbRedis "github.com/kailas-cloud/radar/internal/db/redis"
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/radar/internal/logger"
	"github.com/kailas-cloud/radar/internal/metrics"
	"github.com/kailas-cloud/radar/internal/repository/collected"
	chiTransport "github.com/kailas-cloud/radar/internal/transport/chi"
	"github.com/kailas-cloud/radar/internal/transport/kafka"
	"github.com/kailas-cloud/radar/internal/transport/ws"
	healthuc "github.com/kailas-cloud/radar/internal/usecase/health"
	"github.com/kailas-cloud/radar/internal/usecase/scatter"
	sessionuc "github.com/kailas-cloud/radar/internal/usecase/session"
	"github.com/kailas-cloud/radar/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting radar API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := newStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterRadarMetrics()

	cat := catalog.LoadOrDefault(cfg.Radar.CatalogPath, logger)
	logger.Info("Catalog loaded", zap.Int("items", cat.Len()))

	collectedRepo := collected.New(store, cfg.Storage.KeyPrefix)

	hub := ws.NewHub(ws.Config{
		PingInterval:   time.Duration(cfg.Stream.PingIntervalSec) * time.Second,
		WriteTimeout:   time.Duration(cfg.Stream.WriteTimeoutSec) * time.Second,
		BufferSize:     cfg.Stream.BufferSize,
		AllowedOrigins: cfg.Stream.AllowedOrigins,
	}, logger)
	defer hub.Close()

	listeners := []sessionuc.DiscoveryListener{
		sessionuc.PersistDiscoveries(collectedRepo),
		hub,
	}

	// Pass a nil interface, not a typed nil pointer, when publishing is off.
	var events healthuc.EventsChecker
	if len(cfg.Events.Brokers) > 0 {
		publisher := kafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic, logger)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("Failed to close event publisher", zap.Error(err))
			}
		}()
		listeners = append(listeners, publisher)
		events = publisher
		logger.Info("Discovery events enabled",
			zap.Strings("brokers", cfg.Events.Brokers),
			zap.String("topic", cfg.Events.Topic),
		)
	}

	manager := sessionuc.NewManager(sessionuc.Deps{
		Catalog:   cat,
		Engine:    cfg.Radar.Engine(),
		Rand:      newRandSource(cfg.Radar.Seed),
		Collected: collectedRepo,
		Listeners: listeners,
		Haptics:   hub.Haptics,
		Observer:  metrics.Observer{},
		Logger:    logger,
	}).WithIdleTTL(cfg.Radar.SessionIdleTTL())
	manager.OnEvict(hub.Disconnect)
	defer manager.Close()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go manager.RunSweeper(sweepCtx, time.Duration(cfg.Radar.SessionSweepSec)*time.Second)

	healthSvc := healthuc.New(store, events, manager)
	server := chiTransport.NewServer(manager, cat, collectedRepo, hub, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "redis", "valkey":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// lockedRand makes a seeded generator safe to share between sessions.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

// newRandSource returns a reproducible source for a non-zero seed.
func newRandSource(seed uint64) scatter.RandSource {
	if seed == 0 {
		return scatter.RandFunc(rand.Float64)
	}
	return &lockedRand{rnd: rand.New(rand.NewPCG(seed, seed))}
}
