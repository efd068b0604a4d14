package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	api "github.com/mind-engage/gpa-form/internal/api/http"
	"github.com/mind-engage/gpa-form/internal/config"
	"github.com/mind-engage/gpa-form/internal/logging"
	"github.com/mind-engage/gpa-form/internal/session"
	"github.com/mind-engage/gpa-form/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("load .env")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg(config.Usage())
	}
	logger := logging.New(cfg.LogLevel, cfg.Mode == config.ModeOffline)

	// --- Sessions (in memory only) ---
	store := session.NewStore(cfg.SessionTTL)
	store.Start()
	defer store.Stop()
	sessions := api.Sessions{
		Store:  store,
		Tokens: session.NewTokens(cfg.SessionSecret, cfg.SessionTTL),
		Secure: isHTTPS(cfg.PublicURL),
	}

	renderer, err := view.New(view.Brand{Name: cfg.BrandName, URL: cfg.BrandURL})
	if err != nil {
		logger.Fatal().Err(err).Msg("templates")
	}

	// --- Router ---
	r := api.NewRouter(api.RouterOptions{
		Logger:      logger,
		Sessions:    sessions,
		Renderer:    renderer,
		EnableAPI:   cfg.EnableAPI,
		CORSOrigins: cfg.CORSOrigins(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("mode", string(cfg.Mode)).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func isHTTPS(publicURL string) bool {
	u, err := url.Parse(publicURL)
	return err == nil && u.Scheme == "https"
}
