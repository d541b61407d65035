package cadence

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	LogLevel     log.Level
	TickInterval time.Duration

	// optional Discord announcer
	BotName          string
	BotToken         string
	DiscordChannelID string
}

// LoadConfig reads .env (production) or .env.dev into the environment, then builds
// Config from CADENCE_* variables.
func LoadConfig(isProd bool) (Config, error) {
	if isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}

	config := Config{
		DatabaseURL:      os.Getenv("CADENCE_DB_PATH"),
		BotName:          os.Getenv("CADENCE_BOT_NAME"),
		BotToken:         os.Getenv("CADENCE_DISCORD_TOKEN"),
		DiscordChannelID: os.Getenv("CADENCE_DISCORD_CHANNEL_ID"),
		LogLevel:         log.InfoLevel,
		TickInterval:     DefaultTickInterval,
	}

	if config.DatabaseURL == "" {
		config.DatabaseURL = "cadence.db"
	}
	if config.BotName == "" {
		config.BotName = "Cadence"
	}

	if lvl := os.Getenv("CADENCE_LOG_LEVEL"); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CADENCE_LOG_LEVEL: %w", err)
		}
		config.LogLevel = parsed
	}

	if ms := os.Getenv("CADENCE_TICK_MS"); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid CADENCE_TICK_MS: %q", ms)
		}
		config.TickInterval = time.Duration(n) * time.Millisecond
	}

	if config.BotToken != "" && config.DiscordChannelID == "" {
		return Config{}, fmt.Errorf("required environment variable: CADENCE_DISCORD_CHANNEL_ID")
	}

	return config, nil
}

func (c Config) DiscordEnabled() bool {
	return c.BotToken != ""
}
