package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdvalue/internal/config"
	"github.com/mamadbah2/herdvalue/internal/scheduler"
	"github.com/mamadbah2/herdvalue/internal/server/handlers"
	"github.com/mamadbah2/herdvalue/internal/server/router"
	"github.com/mamadbah2/herdvalue/internal/service/market"
	"github.com/mamadbah2/herdvalue/internal/service/simulation"
	"github.com/mamadbah2/herdvalue/pkg/clients/anthropic"
	"github.com/mamadbah2/herdvalue/pkg/clients/gemini"
	"github.com/mamadbah2/herdvalue/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	provider, err := newQuoteProvider(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init quote provider", zap.Error(err))
	}

	resolver := market.NewResolver(provider, baseLogger.Named("svc.market"))
	simulationSvc := simulation.NewService(resolver, simulation.NewSessionManager(), baseLogger.Named("svc.simulation"))
	simulationHandler := handlers.NewSimulationHandler(simulationSvc, resolver, baseLogger.Named("handlers.simulation"))
	engine := router.New(simulationHandler, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Probe, resolver, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Market.HTTPTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("quote_provider", cfg.Market.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newQuoteProvider(ctx context.Context, cfg *config.Config, baseLogger *zap.Logger) (market.QuoteProvider, error) {
	switch cfg.Market.Provider {
	case config.ProviderGemini:
		baseLogger.Info("gemini quote provider enabled", zap.String("model", cfg.Gemini.Model))
		return gemini.NewClient(ctx, cfg.Gemini, cfg.Market.HTTPTimeout, baseLogger.Named("client.gemini"))
	case config.ProviderAnthropic:
		baseLogger.Info("anthropic quote provider enabled", zap.String("model", cfg.Anthropic.Model))
		return anthropic.NewClient(cfg.Anthropic, cfg.Market.HTTPTimeout, baseLogger.Named("client.anthropic")), nil
	default:
		baseLogger.Warn("no quote provider configured, every quote will be the market estimate")
		return nil, nil
	}
}
