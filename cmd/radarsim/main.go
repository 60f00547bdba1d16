// Command radarsim walks a synthetic player from a start point to every
// target of a session, logging the feedback of each fix.
//
// In-process:
//
//	go run ./cmd/radarsim -lat 13.7367 -lon 100.5232
//
// Against a running server:
//
//	go run ./cmd/radarsim -server http://localhost:8080 -api-key secret
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/db/memory"
	"github.com/kailas-cloud/radar/internal/domain"
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
	logpkg "github.com/kailas-cloud/radar/internal/logger"
	"github.com/kailas-cloud/radar/internal/repository/collected"
	"github.com/kailas-cloud/radar/internal/usecase/feedback"
	"github.com/kailas-cloud/radar/internal/usecase/scatter"
	sessionuc "github.com/kailas-cloud/radar/internal/usecase/session"
	radar "github.com/kailas-cloud/radar/pkg/sdk"
)

type simConfig struct {
	server     string
	apiKey     string
	player     string
	lat        float64
	lon        float64
	stepMeters float64
	maxSteps   int
	interval   time.Duration
	seed       uint64
	catalog    string
	logLevel   string
}

func main() {
	var cfg simConfig
	flag.StringVar(&cfg.server, "server", "", "radar server base URL (empty = in-process engine)")
	flag.StringVar(&cfg.apiKey, "api-key", "", "API key for the server")
	flag.StringVar(&cfg.player, "player", "sim-player", "player ID")
	flag.Float64Var(&cfg.lat, "lat", 13.7367, "start latitude")
	flag.Float64Var(&cfg.lon, "lon", 100.5232, "start longitude")
	flag.Float64Var(&cfg.stepMeters, "step", 1.5, "meters walked per fix")
	flag.IntVar(&cfg.maxSteps, "max-steps", 2000, "give up after this many fixes")
	flag.DurationVar(&cfg.interval, "interval", 100*time.Millisecond, "delay between fixes")
	flag.Uint64Var(&cfg.seed, "seed", 0, "scatter seed for the in-process engine (0 = random)")
	flag.StringVar(&cfg.catalog, "catalog", "", "catalog file for the in-process engine (empty = built-in)")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "debug, info, warn, error")
	flag.Parse()

	logger, err := logpkg.NewLogger("local", cfg.logLevel)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg simConfig, logger *zap.Logger) error {
	start := geo.Coordinate{Lat: cfg.lat, Lon: cfg.lon}
	if !start.Valid() {
		return fmt.Errorf("start %v: %w", start, domain.ErrInvalidFix)
	}

	eng, cleanup, err := newEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	w := walker{
		eng:        eng,
		stepMeters: cfg.stepMeters,
		maxSteps:   cfg.maxSteps,
		interval:   cfg.interval,
		logger:     logger,
	}
	began := time.Now()
	found, err := w.walk(ctx, start)
	logger.Info("Simulation finished",
		zap.Int("discovered", found),
		zap.Duration("elapsed", time.Since(began)),
	)
	return err
}

func newEngine(ctx context.Context, cfg simConfig, logger *zap.Logger) (engine, func(), error) {
	if cfg.server != "" {
		client, err := radar.New(cfg.server, radar.WithAPIKey(cfg.apiKey))
		if err != nil {
			return nil, nil, err
		}
		s, err := client.CreateSession(ctx, cfg.player)
		if err != nil {
			return nil, nil, fmt.Errorf("create session: %w", err)
		}
		logger.Info("Remote session created", zap.String("session_id", s.ID()), zap.String("server", cfg.server))
		cleanup := func() {
			if err := s.Delete(context.Background()); err != nil {
				logger.Warn("Failed to delete session", zap.Error(err))
			}
		}
		return remoteEngine{s: s}, cleanup, nil
	}

	var rnd scatter.RandSource
	if cfg.seed != 0 {
		rnd = rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	}
	repo := collected.New(memory.NewStore(), "radarsim:")
	mgr := sessionuc.NewManager(sessionuc.Deps{
		Catalog:   catalog.LoadOrDefault(cfg.catalog, logger),
		Rand:      rnd,
		Collected: repo,
		Listeners: []sessionuc.DiscoveryListener{sessionuc.PersistDiscoveries(repo)},
		Haptics: func(string) feedback.HapticDriver {
			return feedback.HapticDriverFunc(func(intensity float64) {
				logger.Debug("Pulse", zap.Float64("intensity", intensity))
			})
		},
		Logger: logger,
	})
	c, err := mgr.Create(ctx, cfg.player)
	if err != nil {
		return nil, nil, err
	}
	return localEngine{c: c}, mgr.Close, nil
}
