// Command invaders opens the game in a desktop window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plus3/invaders/config"
	"github.com/plus3/invaders/frontend/window"
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
	overlay := flag.Bool("overlay", false, "Enable the ImGui debug overlay (toggle with F1).")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		return err
	}
	if *overlay {
		cfg.Window.DebugOverlay = true
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting", zap.Uint64("seed", cfg.Gameplay.Seed))
	return window.New(cfg, log).Run()
}
