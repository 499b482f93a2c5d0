// Command invaders-sim runs the simulation headless under a scripted player and
// prints a markdown report of gameplay counters and tick timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/invaders/config"
	"github.com/plus3/invaders/game"
	"github.com/plus3/invaders/logging"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to the TOML config file (default $INVADERS_CONFIG or "+config.DefaultPath+").")
	ticks := flag.Uint64("ticks", 36000, "Number of ticks to simulate; 0 runs until -duration elapses.")
	duration := flag.Duration("duration", 0, "Wall clock limit for the run; 0 means no limit.")
	seed := flag.Uint64("seed", 1, "Seed for the simulation and the scripted player.")
	profileMode := flag.String("profile", "", "Write a pprof profile to -profile-dir: cpu, mem or block.")
	profileDir := flag.String("profile-dir", ".", "Directory for profile output.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Include GC pause totals in the report.")
	flag.Parse()

	if *ticks == 0 && *duration == 0 {
		return fmt.Errorf("one of -ticks or -duration is required")
	}

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		return err
	}
	cfg.Gameplay.Seed = *seed

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if *profileMode != "" {
		mode, err := profileOption(*profileMode)
		if err != nil {
			return err
		}
		defer profile.Start(mode, profile.ProfilePath(*profileDir), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	g := game.New(cfg.Gameplay, game.PlayfieldFor(cfg.Window.Width, cfg.Window.Height), log)
	player := newBot(*seed)

	report := &Report{
		Ticks:          *ticks,
		Duration:       *duration,
		Seed:           *seed,
		EnemyMax:       cfg.Gameplay.EnemyMax,
		GCPauseMetrics: *gcPauseMetrics,
	}

	ctx := context.Background()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	log.Info("simulation started", zap.Uint64("ticks", *ticks), zap.Duration("duration", *duration), zap.Uint64("seed", *seed))
	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	snap := g.Snapshot()
Loop:
	for *ticks == 0 || report.TotalTicks < *ticks {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		g.Step(player.Input(snap))
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		snap = g.Snapshot()
		report.Observe(snap)
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Systems = g.SchedulerStats().Systems
	report.Storage = g.Storage().CollectStats()

	log.Info("simulation finished",
		zap.Uint64("ticks", report.TotalTicks),
		zap.Int("games", report.Games),
		zap.Duration("elapsed", report.TotalTime))

	return report.Generate(os.Stdout)
}

func profileOption(mode string) (func(*profile.Profile), error) {
	switch mode {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfileAllocs, nil
	case "block":
		return profile.BlockProfile, nil
	}
	return nil, fmt.Errorf("unknown profile mode %q (want cpu, mem or block)", mode)
}
