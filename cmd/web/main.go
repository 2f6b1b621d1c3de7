package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chainmail/internal/config"
	"chainmail/internal/content"
	"chainmail/internal/game"
	"chainmail/internal/handlers"
	"chainmail/internal/store"
)

func main() {
	_ = godotenv.Load()
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	pack, err := content.Open(cfg.ContentDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load content")
	}

	ctx := context.Background()
	rounds, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("type", cfg.Store.Type).Msg("failed to open round store")
	}
	defer rounds.Close()

	sessions := game.NewStore(pack, cfg.Game, cfg.Seeds, rounds)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("static files")
	}
	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	handlers.NewHomeHandler(sessions).RegisterRoutes(r)
	handlers.NewSessionHandler(sessions).RegisterRoutes(r)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       120 * time.Second,
	}

	reapCtx, stopReaper := context.WithCancel(ctx)
	go reap(reapCtx, sessions, cfg.SessionIdle)

	go func() {
		log.Info().Str("addr", server.Addr).Str("store", cfg.Store.Type).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	stopReaper()
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	sessions.Close()
}

// reap stops idle sessions until ctx is done.
func reap(ctx context.Context, sessions *game.Store, maxIdle time.Duration) {
	ticker := time.NewTicker(maxIdle / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sessions.Reap(now, maxIdle)
		}
	}
}

//go:embed static/*
var embeddedStatic embed.FS
