package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Feed.BaseURL != "https://statsapi.mlb.com" || cfg.Feed.TeamID != 142 || cfg.Feed.Timezone != "America/Chicago" {
		t.Errorf("unexpected feed defaults: %+v", cfg.Feed)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.SQLitePath != "data/batter_boost.db" {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Schedule.LivePoll != "@every 15s" || cfg.Schedule.ViewingCheck != "@every 5m" {
		t.Errorf("unexpected schedule defaults: %+v", cfg.Schedule)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
telegram:
  bot_token: file-token
  chat_id: "100"
feed:
  team_id: 147
  team_name: Yankees
  timezone: America/New_York
store:
  backend: file
  path: /tmp/bb
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("LIVE_POLL_INTERVAL", "*/30 * * * * *")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("env should override file, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Feed.TeamID != 147 || cfg.Feed.TeamName != "Yankees" || cfg.Store.Path != "/tmp/bb" {
		t.Errorf("file values not applied: %+v %+v", cfg.Feed, cfg.Store)
	}
	if cfg.Location().String() != "America/New_York" {
		t.Errorf("Location = %s", cfg.Location())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadRejectsBadTeamID(t *testing.T) {
	t.Setenv("TEAM_ID", "twins")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for non-numeric TEAM_ID")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		cfg.Telegram.BotToken = "t"
		cfg.Telegram.ChatID = "1"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"no token", func(c *Config) { c.Telegram.BotToken = "" }, "bot_token"},
		{"no chat", func(c *Config) { c.Telegram.ChatID = "" }, "chat_id"},
		{"bad timezone", func(c *Config) { c.Feed.Timezone = "Mars/Olympus" }, "timezone"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }, "store.backend"},
		{"redis without url", func(c *Config) { c.Store.Backend = "redis" }, "redis_url"},
		{"bad poll schedule", func(c *Config) { c.Schedule.LivePoll = "every now and then" }, "live_poll"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
