package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/elgoog577215-beep/skyfall/config"
	"github.com/elgoog577215-beep/skyfall/engine"
	"github.com/elgoog577215-beep/skyfall/input"
	"github.com/elgoog577215-beep/skyfall/network"
	"github.com/elgoog577215-beep/skyfall/record"
	"github.com/elgoog577215-beep/skyfall/status"
)

var (
	configFlag     = flag.String("config", "", "Config file or directory holding skyfall.toml")
	addrFlag       = flag.String("addr", "", "Listen address, overrides network.address")
	seedFlag       = flag.Uint64("seed", 0, "Gameplay seed, 0 uses the config or the clock")
	frameEveryFlag = flag.Int("frame-every", 0, "Send one frame per N ticks")
	statsFlag      = flag.Duration("stats", 30*time.Second, "Interval of status log lines, 0 disables")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Network.Address = *addrFlag
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}

	logger := newLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

// newLogger writes to stderr, human-readable when debug is set
func newLogger(cfg config.LogConfig) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if cfg.Debug {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		return zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	registry := status.NewRegistry()
	sim := engine.NewSimulation(engine.Config{
		Seed:     cfg.Sim.Seed,
		Bindings: input.NewFileStore(cfg.Bindings.Path),
		Registry: registry,
		Logger:   logger,
	})
	loop := engine.NewLoop(sim, cfg.Sim.TickRate, logger)

	if cfg.Records.Enabled {
		store, err := record.Open(cfg.Records.Path, logger)
		if err != nil {
			return fmt.Errorf("open records: %w", err)
		}
		defer store.Close()

		lookup, cancel := context.WithTimeout(ctx, 2*time.Second)
		if best, ok, err := store.Best(lookup); err != nil {
			logger.Warn().Err(err).Msg("best score lookup failed")
		} else if ok {
			sim.SetBestScore(best.Score)
		}
		cancel()

		writer := record.NewWriter(store, cfg.Records.QueueSize, sim.Seed, logger)
		defer writer.Close()
		sim.Bus().Subscribe(writer)
	}

	ncfg := network.DefaultConfig()
	ncfg.Address = cfg.Network.Address
	ncfg.MaxPeers = cfg.Network.MaxPeers
	ncfg.WriteTimeout = cfg.Network.WriteTimeout
	ncfg.SendQueueSize = cfg.Network.SendQueue
	if *frameEveryFlag > 0 {
		ncfg.FrameEvery = *frameEveryFlag
	}

	service := network.NewService(ncfg, loop, logger)
	loop.OnFrame(service.PublishFrame)

	// Gauges export through whatever MeterProvider the host installs, no-op by default
	reg, err := status.Instrument(status.Meter(), registry)
	if err != nil {
		return fmt.Errorf("instrument metrics: %w", err)
	}
	defer reg.Unregister()

	if err := service.Start(); err != nil {
		return fmt.Errorf("start network: %w", err)
	}
	logger.Info().
		Str("addr", service.Addr().String()).
		Uint64("seed", sim.Seed()).
		Str("config", cfg.Source).
		Msg("server listening")

	if *statsFlag > 0 {
		go logStats(ctx, *statsFlag, registry, service, loop, logger)
	}

	runErr := loop.Run(ctx)

	if err := service.Stop(); err != nil {
		logger.Warn().Err(err).Msg("network stop failed")
	}
	logger.Info().
		Uint64("frames", service.FramesSent()).
		Uint64("malformed", service.Malformed()).
		Uint64("dropped_commands", loop.Dropped()).
		Msg("server stopped")
	return runErr
}

// logStats periodically logs the metric registry and service counters
func logStats(ctx context.Context, every time.Duration, reg *status.Registry, svc *network.Service, loop *engine.Loop, logger zerolog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Info().
				Fields(reg.Values()).
				Int("peers", svc.PeerCount()).
				Uint64("frames", svc.FramesSent()).
				Uint64("dropped_commands", loop.Dropped()).
				Msg("status")
		}
	}
}
