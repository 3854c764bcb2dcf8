package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ayo6706/loan-origination/internal/api"
	"github.com/ayo6706/loan-origination/internal/config"
	"github.com/ayo6706/loan-origination/internal/domain"
	"github.com/ayo6706/loan-origination/internal/models"
	"github.com/ayo6706/loan-origination/internal/observability"
	"github.com/ayo6706/loan-origination/internal/repository"
	"github.com/ayo6706/loan-origination/internal/service"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Run bootstraps the HTTP server, blocking until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	observability.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := repository.NewStore()
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer store.Close()

	handler, err := newHandler(ctx, cfg, logger, store)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return serve(ctx, logger, server, cfg.ShutdownTimeout)
}

// serve runs server until ctx is cancelled, then drains in-flight requests
// for at most grace.
func serve(ctx context.Context, logger *zap.Logger, server *http.Server, grace time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// newHandler wires services over store and returns the routed HTTP handler.
func newHandler(ctx context.Context, cfg *config.Config, logger *zap.Logger, store *repository.Store) (http.Handler, error) {
	merchantSvc := service.NewMerchantConfigService(store)
	loanSvc := service.NewLoanApplicationService(store, store, cfg.APIPrefix)

	if cfg.SeedDefaultMerchant {
		m, err := seedDefaultMerchant(ctx, merchantSvc)
		if err != nil {
			return nil, fmt.Errorf("seed default merchant: %w", err)
		}
		logger.Info("default merchant seeded", zap.Int64("merchant_id", m.MerchantID), zap.String("name", m.Name))
	}

	router := api.NewRouter(cfg, logger, store, merchantSvc, loanSvc)
	return router.Routes(), nil
}

func seedDefaultMerchant(ctx context.Context, svc *service.MerchantConfigService) (*models.MerchantConfiguration, error) {
	name, _ := json.Marshal(domain.DefaultMerchantName)
	return svc.Create(ctx, service.MerchantConfigInput{
		Name:              name,
		MinimumLoanAmount: json.RawMessage(domain.DefaultMerchantMinimumAmount),
		MaximumLoanAmount: json.RawMessage(domain.DefaultMerchantMaximumAmount),
		PrequalEnabled:    json.RawMessage("false"),
	})
}

// newLogger builds the production JSON logger. Unknown levels fall back to
// info and are reported on the returned logger.
func newLogger(level string) (*zap.Logger, error) {
	level = strings.TrimSpace(level)
	lvl, parseErr := zapcore.ParseLevel(level)
	if parseErr != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if parseErr != nil {
		logger.Warn("unknown log level, using info", zap.String("log_level", level))
	}
	return logger, nil
}
