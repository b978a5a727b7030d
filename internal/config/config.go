package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the reminder daemon.
type Config struct {
	DatabasePath   string
	SweepInterval  time.Duration
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from environment variables with sane defaults.
// The Telegram settings are optional; chat id is required once a token is
// given.
func Load() (Config, error) {
	cfg := Config{
		DatabasePath:  strings.TrimSpace(os.Getenv("DATABASE_PATH")),
		SweepInterval: parseInterval(strings.TrimSpace(os.Getenv("SWEEP_INTERVAL"))),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/taskmanager.db"
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = time.Minute
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = chatID
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
