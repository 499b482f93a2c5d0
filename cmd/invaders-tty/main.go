// Command invaders-tty plays the game inside a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/invaders/config"
	"github.com/plus3/invaders/frontend/terminal"
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
	logFile := flag.String("log", "", "Write logs to this file; logging is off otherwise.")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		return err
	}

	// The screen owns stdout and stderr while it is active.
	log := zap.NewNop()
	if *logFile != "" {
		cfg.Logging.File = *logFile
		if log, err = logging.New(cfg.Logging); err != nil {
			return err
		}
	}
	defer func() { _ = log.Sync() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	field := game.PlayfieldFor(cfg.Window.Width, cfg.Window.Height)
	g := game.New(cfg.Gameplay, field, log)

	err = terminal.New(screen, g, field, log).Run(ctx)
	if ctx.Err() != nil {
		// Interrupted by a signal.
		return nil
	}
	return err
}
