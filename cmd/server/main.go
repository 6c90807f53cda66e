package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mfolio/mf-portfolio-tracker/internal/api"
	"github.com/mfolio/mf-portfolio-tracker/internal/config"
	"github.com/mfolio/mf-portfolio-tracker/internal/logging"
	"github.com/mfolio/mf-portfolio-tracker/internal/mfapi"
	"github.com/mfolio/mf-portfolio-tracker/internal/service"
	"github.com/mfolio/mf-portfolio-tracker/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.FilePath = cfg.Logging.File
	logger := logging.NewLogger(logCfg)

	// Open the portfolio store
	st, err := store.Open(cfg.Data.PortfolioFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open portfolio store")
	}
	logger.Info().Str("file", cfg.Data.PortfolioFile).Msg("portfolio store opened")

	// NAV provider with disk cache
	navClient, err := mfapi.NewClient(
		cfg.Data.NAVCacheDir,
		time.Duration(cfg.Data.NAVCacheTTLH)*time.Hour,
		logger.With().Str("component", "mfapi").Logger(),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create NAV client")
	}

	// Create services
	portfolioService := service.NewPortfolioService(
		st,
		navClient,
		service.GainsConfig{
			EquityLongTermDays: cfg.Gains.EquityLongTermDays,
			DebtLongTermDays:   cfg.Gains.DebtLongTermDays,
			LongTermExemption:  cfg.Gains.LongTermExemption,
		},
		logger.With().Str("component", "portfolio").Logger(),
	)

	// Scheduled NAV refresh keeps the cache warm so request-time valuations
	// rarely hit the API.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Data.RefreshSchedule, func() {
		refreshNAVs(st, navClient, logger)
	}); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Data.RefreshSchedule).Msg("invalid NAV refresh schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(portfolioService, navClient, st, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}

// refreshNAVs refetches the latest NAV for every registered instrument.
func refreshNAVs(st *store.Store, navClient *mfapi.Client, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	instruments := st.Instruments()
	ids := make([]string, len(instruments))
	for i, inst := range instruments {
		ids[i] = inst.ID
	}

	if err := navClient.ClearCache(); err != nil {
		logger.Error().Err(err).Msg("failed to clear NAV cache")
		return
	}

	navs, err := navClient.LatestNAVs(ctx, ids)
	if err != nil {
		logger.Error().Err(err).Msg("scheduled NAV refresh failed")
		return
	}
	logger.Info().Int("requested", len(ids)).Int("refreshed", len(navs)).Msg("scheduled NAV refresh complete")
}
