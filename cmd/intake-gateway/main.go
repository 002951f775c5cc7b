// Intake-gateway receives Slack event webhooks and runs the request
// intake bot against the external record store.
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

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/davidahmann/intake/internal/api"
	"github.com/davidahmann/intake/internal/config"
	"github.com/davidahmann/intake/internal/slack"
	"github.com/davidahmann/intake/internal/store"
	"github.com/davidahmann/intake/internal/track"
)

const version = "0.2.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var (
		configPath  string
		listenAddr  string
		debug       bool
		showVersion bool
	)
	pflag.StringVar(&configPath, "config", "intake.yaml", "path to the config file")
	pflag.StringVar(&listenAddr, "listen", "", "listen address override")
	pflag.BoolVar(&debug, "debug", false, "enable debug logging")
	pflag.BoolVar(&showVersion, "version", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Printf("intake-gateway %s\n", version)
		return nil
	}

	logger, err := buildLogger(debug)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	srv := newServer(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logger.Info("intake-gateway listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("version", version),
	)

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newServer(cfg config.Config, logger *zap.Logger) *http.Server {
	conversation := &slack.Client{Token: cfg.Slack.BotToken}
	records := &store.Client{BaseURL: cfg.Store.BaseURL, Token: cfg.Store.Token}

	orchestrator := &track.Orchestrator{
		Conversation: conversation,
		Store:        records,
		Collections:  cfg.Collections.ByCategory(),
		WorkspaceURL: cfg.WorkspaceURL,
		BotUserID:    cfg.Slack.BotUserID,
		Logger:       logger,
	}

	events := &slack.EventsHandler{
		SigningSecret: cfg.Slack.SigningSecret,
		BotUserID:     cfg.Slack.BotUserID,
		Mentions:      orchestrator,
	}

	h := &api.Handler{Events: events}
	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}
