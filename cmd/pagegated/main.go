package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagegate/internal/gate/common/clock"
	"pagegate/internal/gate/common/log"
	"pagegate/internal/gate/config"
	"pagegate/internal/gate/domain"
	"pagegate/internal/gate/gateways/httpapi"
	"pagegate/internal/gate/repos/rules"
	"pagegate/internal/gate/repos/rules/bolt"
	"pagegate/internal/gate/repos/rules/lru"
	"pagegate/internal/gate/services/evaluator"
	"pagegate/internal/gate/services/timer"
)

const (
	version = "0.1.0-dev"
	appName = "pagegated"

	defaultShutdownTimeout = 10 * time.Second
)

// Application holds the wired components of the gate daemon.
type Application struct {
	config *config.AppConfig
	server *httpapi.Server
	rules  rules.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":    version,
		"env":        cfg.Env,
		"log_level":  cfg.LogLevel,
		"port":       cfg.Port,
		"db_path":    cfg.DBPath,
		"cache_size": cfg.CacheSize,
	}, "Starting pagegate daemon")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}
	defer func() {
		if err := app.rules.Close(); err != nil {
			log.Error(map[string]any{"error": err}, "Failed to close rule store")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Server failed")
	}

	log.Info(nil, "pagegate daemon stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	clk := clock.RealClock{}
	logger := log.GetLogger()

	store, err := bolt.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule store: %w", err)
	}

	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create match cache: %w", err)
	}

	extractor := domain.NewTargetExtractor(domain.DefaultProfiles())

	repo, err := rules.NewRepository(store, cache, extractor, clk, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule repository: %w", err)
	}

	// Seed from rule files when the store is still empty.
	var reloader httpapi.Reloader
	if cfg.RulesPath != "" || cfg.WhitelistPath != "" {
		loader := &rules.FileLoader{
			RulesPath:     cfg.RulesPath,
			WhitelistPath: cfg.WhitelistPath,
			Repo:          repo,
			Logger:        logger,
		}
		reloader = loader
		if blocked, _ := repo.Snapshot(); blocked.Len() == 0 {
			if err := loader.Reload(); err != nil {
				return nil, fmt.Errorf("failed to seed rule lists: %w", err)
			}
		}
	}

	pomodoro, err := timer.New(
		time.Duration(cfg.WorkMinutes)*time.Minute,
		time.Duration(cfg.RestMinutes)*time.Minute,
		clk,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build timer: %w", err)
	}

	workHours, err := domain.NewWorkHours(cfg.WorkHoursEnabled, cfg.WorkStart, cfg.WorkEnd, cfg.WorkDays)
	if err != nil {
		return nil, fmt.Errorf("invalid work-hours config: %w", err)
	}

	eval := evaluator.New(evaluator.Options{
		Rules:     repo,
		Timer:     pomodoro,
		WorkHours: evaluator.StaticWorkHours(workHours),
		Clock:     clk,
		Logger:    logger,
	})

	server := httpapi.NewServer(eval, pomodoro, repo, reloader, httpapi.Config{
		RedirectURL:   cfg.RedirectURL,
		RedirectDelay: cfg.RedirectDelay,
	}, logger)

	return &Application{config: cfg, server: server, rules: repo}, nil
}

// Run serves the HTTP API until the context is cancelled, then shuts down
// gracefully.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", a.config.Port),
		Handler: a.server.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info(map[string]any{"addr": srv.Addr}, "HTTP API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
