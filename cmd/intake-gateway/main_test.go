package main

import (
	"testing"

	"go.uber.org/zap"

	"github.com/davidahmann/intake/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		ListenAddr:   ":9999",
		WorkspaceURL: "https://acme.slack.com",
		Slack: config.Slack{
			BotToken:      "xoxb-test",
			BotUserID:     "U0BOT",
			SigningSecret: "secret",
		},
		Store: config.Store{
			BaseURL: "https://records.example.com",
			Token:   "tok",
		},
		Collections: config.Collections{
			Feature:             "feat00000000000000000000000000ff",
			BusinessDevelopment: "bdbd0000000000000000000000000000",
		},
	}
}

func TestNewServer(t *testing.T) {
	srv := newServer(testConfig(), zap.NewNop())
	if srv.Addr != ":9999" {
		t.Fatalf("expected addr %s, got %s", ":9999", srv.Addr)
	}
	if srv.Handler == nil {
		t.Fatalf("expected handler to be set")
	}
	if srv.ReadHeaderTimeout == 0 {
		t.Fatalf("expected non-zero read header timeout")
	}
}

func TestBuildLogger(t *testing.T) {
	logger, err := buildLogger(true)
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug level not enabled")
	}
}
