package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chainmail/internal/config"
	"chainmail/internal/content"
	"chainmail/internal/game"
	"chainmail/internal/rng"
	"chainmail/internal/store"
	"chainmail/internal/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chainmail:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	// The screen owns stdout, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.Logger = zerolog.New(logFile).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(cfg.Level())

	pack, err := content.Open(cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rounds, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open round store: %w", err)
	}
	defer rounds.Close()

	session, err := game.NewSession(pack, cfg.Game, rng.NewStreams(cfg.Seeds))
	if err != nil {
		return err
	}
	host := game.NewHost(uuid.New().String(), session, rounds, cfg.Game.TickInterval)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	hostErr := make(chan error, 1)
	go func() {
		hostErr <- host.Run(ctx)
		cancel()
	}()

	terminal.New(screen, host).Run(ctx)
	cancel()
	if err := <-hostErr; err != nil {
		return err
	}
	log.Info().Str("session", host.ID).Msg("bye")
	return nil
}
