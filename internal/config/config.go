// Package config loads the gateway's configuration: a yaml file for
// structure, environment variables for secrets. Loaded once at process
// start and immutable afterwards; anything invalid prevents startup.
package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/davidahmann/intake/internal/request"
)

type Config struct {
	ListenAddr   string      `yaml:"listen_addr"`
	WorkspaceURL string      `yaml:"workspace_url"`
	Slack        Slack       `yaml:"slack"`
	Store        Store       `yaml:"store"`
	Collections  Collections `yaml:"collections"`
}

type Slack struct {
	BotToken      string `yaml:"bot_token"`
	BotUserID     string `yaml:"bot_user_id"`
	SigningSecret string `yaml:"signing_secret"`
}

type Store struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// Collections maps each request category to its backing collection
// identifier in the record store.
type Collections struct {
	Feature             string `yaml:"feature"`
	BusinessDevelopment string `yaml:"business_development"`
}

// ByCategory returns the category to collection-id mapping the
// orchestrator consumes.
func (c Collections) ByCategory() map[request.Category]string {
	return map[request.Category]string{
		request.Feature: c.Feature,
		request.BizDev:  c.BusinessDevelopment,
	}
}

var collectionIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Load reads the yaml file at path and applies environment overrides
// for secrets. getenv is injectable for tests; pass os.Getenv.
func Load(path string, getenv func(string) string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if v := getenv("SLACK_BOT_TOKEN"); v != "" {
		cfg.Slack.BotToken = v
	}
	if v := getenv("SLACK_SIGNING_SECRET"); v != "" {
		cfg.Slack.SigningSecret = v
	}
	if v := getenv("STORE_TOKEN"); v != "" {
		cfg.Store.Token = v
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	return cfg, nil
}

// Validate enforces the required surface. Called at startup; a failure
// here prevents the process from serving.
func (c Config) Validate() error {
	if c.WorkspaceURL == "" {
		return fmt.Errorf("workspace_url is required")
	}
	if c.Slack.BotToken == "" {
		return fmt.Errorf("slack.bot_token is required (or SLACK_BOT_TOKEN)")
	}
	if c.Slack.BotUserID == "" {
		return fmt.Errorf("slack.bot_user_id is required")
	}
	if c.Slack.SigningSecret == "" {
		return fmt.Errorf("slack.signing_secret is required (or SLACK_SIGNING_SECRET)")
	}
	if c.Store.BaseURL == "" {
		return fmt.Errorf("store.base_url is required")
	}
	if c.Store.Token == "" {
		return fmt.Errorf("store.token is required (or STORE_TOKEN)")
	}
	for name, id := range map[string]string{
		"collections.feature":              c.Collections.Feature,
		"collections.business_development": c.Collections.BusinessDevelopment,
	} {
		if !collectionIDPattern.MatchString(id) {
			return fmt.Errorf("%s must be a 32-character lowercase hex id, got %q", name, id)
		}
	}
	return nil
}
