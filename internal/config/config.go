package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Feed struct {
		BaseURL  string `yaml:"base_url"`
		TeamID   int    `yaml:"team_id"`
		TeamName string `yaml:"team_name"`
		Timezone string `yaml:"timezone"`
	} `yaml:"feed"`
	Store struct {
		Backend    string `yaml:"backend"`
		Path       string `yaml:"path"`
		SQLitePath string `yaml:"sqlite_path"`
		RedisURL   string `yaml:"redis_url"`
	} `yaml:"store"`
	Schedule struct {
		LivePoll     string `yaml:"live_poll"`
		ViewingCheck string `yaml:"viewing_check"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A .env file in the working directory, if present, is loaded into the environment first;
// variables already set win.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("MLB_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("TEAM_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse TEAM_ID: %w", err)
		}
		cfg.Feed.TeamID = id
	}
	if v := os.Getenv("TEAM_TIMEZONE"); v != "" {
		cfg.Feed.Timezone = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Store.RedisURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LIVE_POLL_INTERVAL"); v != "" {
		cfg.Schedule.LivePoll = v
	}

	// Defaults
	if cfg.Feed.BaseURL == "" {
		cfg.Feed.BaseURL = "https://statsapi.mlb.com"
	}
	if cfg.Feed.TeamID == 0 {
		cfg.Feed.TeamID = 142
	}
	if cfg.Feed.TeamName == "" {
		cfg.Feed.TeamName = "Twins"
	}
	if cfg.Feed.Timezone == "" {
		cfg.Feed.Timezone = "America/Chicago"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "sqlite"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "data"
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = "data/batter_boost.db"
	}
	if cfg.Schedule.LivePoll == "" {
		cfg.Schedule.LivePoll = "@every 15s"
	}
	if cfg.Schedule.ViewingCheck == "" {
		cfg.Schedule.ViewingCheck = "@every 5m"
	}

	return cfg, nil
}

// Location returns the team's time zone, falling back to UTC if it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Feed.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// cronParser matches the scheduler's cron.WithSeconds parser.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Feed.BaseURL == "" {
		return fmt.Errorf("feed.base_url is required")
	}
	if c.Feed.TeamID <= 0 {
		return fmt.Errorf("feed.team_id must be positive")
	}
	if _, err := time.LoadLocation(c.Feed.Timezone); err != nil {
		return fmt.Errorf("feed.timezone: %w", err)
	}
	switch c.Store.Backend {
	case "file", "sqlite", "memory":
	case "redis":
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("store.backend %q is not one of file, sqlite, redis, memory", c.Store.Backend)
	}
	if _, err := cronParser.Parse(c.Schedule.LivePoll); err != nil {
		return fmt.Errorf("schedule.live_poll: %w", err)
	}
	if _, err := cronParser.Parse(c.Schedule.ViewingCheck); err != nil {
		return fmt.Errorf("schedule.viewing_check: %w", err)
	}
	return nil
}
