package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data/taskmanager.db", cfg.DatabasePath)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Empty(t, cfg.TelegramToken)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/planner.db")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/planner.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}

func TestLoadBadIntervalFallsBack(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("SWEEP_INTERVAL", "soon")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
}

func TestLoadTokenRequiresChatID(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonNumericChatID(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
