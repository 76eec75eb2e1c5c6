package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fichedesk/dashboard/internal/api"
	"github.com/fichedesk/dashboard/internal/core/service"
	"github.com/fichedesk/dashboard/internal/pkg/config"
	"github.com/fichedesk/dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Env: cfg.Env})

	opened, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer opened.release(log)

	e := api.NewRouter(api.Dependencies{
		Auth: service.NewAuthService(opened.store, cfg.Session.JWTSecret, cfg.Session.TTL, logger.Component("auth")),
		Fiches: service.NewFicheService(opened.store, service.Pagination{
			DefaultLimit: cfg.API.DefaultPageLimit,
			MaxLimit:     cfg.API.MaxPageLimit,
		}, logger.Component("fiches")),
		Users:        service.NewUserService(opened.store),
		Analytics:    service.NewAnalyticsService(opened.store, cfg.Location(), logger.Component("analytics")),
		Probes:       opened.probes,
		CookieSecure: cfg.Session.CookieSecure,
		LoginLimit:   api.LoginLimit{Rate: cfg.API.LoginRate, Burst: cfg.API.LoginBurst},
		Logger:       logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
