// Package config loads runtime settings for the codec tools (tile size
// limits, the 8bpp palette file, and logging) from environment
// variables and command-line overrides, the way the rest of this
// module's ambient stack is configured.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

var (
	globalConfig *Config
	configMutex  sync.Mutex
)

// Config holds the application configuration.
type Config struct {
	Tile    TileConfig    `json:"tile"`
	Logging LoggingConfig `json:"logging"`
}

// LoadOptions holds command-line override options.
type LoadOptions struct {
	LogLevel    string
	PaletteFile string
}

// TileConfig holds the configured tile dimension ceiling and names the
// palette used for 8bpp tiles. MaxWidth and MaxHeight are checked by
// Validate only; the decoder and compressor in internal/tile do not
// read them.
type TileConfig struct {
	MaxWidth    int    `json:"maxWidth" env:"TILE_MAX_WIDTH" default:"64"`
	MaxHeight   int    `json:"maxHeight" env:"TILE_MAX_HEIGHT" default:"64"`
	PaletteFile string `json:"paletteFile" env:"TILE_PALETTE_FILE" default:""`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `json:"level" env:"LOG_LEVEL" default:"info"`
}

// Load loads configuration from environment variables with defaults.
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads configuration with command-line overrides.
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	config := &Config{}

	config.Tile.MaxWidth = getIntWithDefault("TILE_MAX_WIDTH", 64)
	config.Tile.MaxHeight = getIntWithDefault("TILE_MAX_HEIGHT", 64)
	config.Tile.PaletteFile = getOverrideOrEnv(opts.PaletteFile, "TILE_PALETTE_FILE", "")

	config.Logging.Level = getOverrideOrEnv(opts.LogLevel, "LOG_LEVEL", "info")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = config
	configMutex.Unlock()

	return config, nil
}

// GetGlobalConfig returns the globally stored configuration, the one
// loaded by cmd/tiledump with its command-line overrides applied.
func GetGlobalConfig() *Config {
	configMutex.Lock()
	defer configMutex.Unlock()
	return globalConfig
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Tile.MaxWidth <= 0 || c.Tile.MaxHeight <= 0 {
		return fmt.Errorf("tile dimensions must be positive")
	}
	if c.Tile.MaxWidth%4 != 0 {
		return fmt.Errorf("tile max width must be a multiple of 4: %d", c.Tile.MaxWidth)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getOverrideOrEnv(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	return getEnvWithDefault(envKey, defaultValue)
}
