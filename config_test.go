package cadence

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CADENCE_DB_PATH", "")
		t.Setenv("CADENCE_BOT_NAME", "")
		t.Setenv("CADENCE_DISCORD_TOKEN", "")
		t.Setenv("CADENCE_LOG_LEVEL", "")
		t.Setenv("CADENCE_TICK_MS", "")

		cfg, err := LoadConfig(false)
		require.NoError(t, err)
		assert.Equal(t, "cadence.db", cfg.DatabaseURL)
		assert.Equal(t, "Cadence", cfg.BotName)
		assert.Equal(t, log.InfoLevel, cfg.LogLevel)
		assert.Equal(t, DefaultTickInterval, cfg.TickInterval)
		assert.False(t, cfg.DiscordEnabled())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CADENCE_DB_PATH", "/tmp/x.db")
		t.Setenv("CADENCE_LOG_LEVEL", "debug")
		t.Setenv("CADENCE_TICK_MS", "1000")
		t.Setenv("CADENCE_DISCORD_TOKEN", "token")
		t.Setenv("CADENCE_DISCORD_CHANNEL_ID", "123")

		cfg, err := LoadConfig(false)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/x.db", cfg.DatabaseURL)
		assert.Equal(t, log.DebugLevel, cfg.LogLevel)
		assert.Equal(t, time.Second, cfg.TickInterval)
		assert.True(t, cfg.DiscordEnabled())
	})

	t.Run("token without channel", func(t *testing.T) {
		t.Setenv("CADENCE_DISCORD_TOKEN", "token")
		t.Setenv("CADENCE_DISCORD_CHANNEL_ID", "")

		_, err := LoadConfig(false)
		assert.Error(t, err)
	})

	t.Run("bad tick", func(t *testing.T) {
		t.Setenv("CADENCE_DISCORD_TOKEN", "")
		t.Setenv("CADENCE_TICK_MS", "soon")

		_, err := LoadConfig(false)
		assert.Error(t, err)
	})
}
