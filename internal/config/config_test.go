package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    *Config
	}{
		{
			name:    "default configuration",
			envVars: map[string]string{},
			want: &Config{
				Tile:    TileConfig{MaxWidth: 64, MaxHeight: 64},
				Logging: LoggingConfig{Level: "info"},
			},
		},
		{
			name: "custom environment variables",
			envVars: map[string]string{
				"TILE_MAX_WIDTH":  "32",
				"TILE_MAX_HEIGHT": "32",
				"LOG_LEVEL":       "debug",
			},
			want: &Config{
				Tile:    TileConfig{MaxWidth: 32, MaxHeight: 32},
				Logging: LoggingConfig{Level: "debug"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want.Tile.MaxWidth, cfg.Tile.MaxWidth)
			assert.Equal(t, tt.want.Tile.MaxHeight, cfg.Tile.MaxHeight)
			assert.Equal(t, tt.want.Logging.Level, cfg.Logging.Level)

			for k := range tt.envVars {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadWithOverrides(t *testing.T) {
	cfg, err := LoadWithOverrides(LoadOptions{LogLevel: "warn", PaletteFile: "palette.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "palette.yaml", cfg.Tile.PaletteFile)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid configuration",
			cfg: &Config{
				Tile:    TileConfig{MaxWidth: 64, MaxHeight: 64},
				Logging: LoggingConfig{Level: "info"},
			},
		},
		{
			name: "invalid dimensions",
			cfg: &Config{
				Tile:    TileConfig{MaxWidth: -1, MaxHeight: 64},
				Logging: LoggingConfig{Level: "info"},
			},
			wantErr: true,
			errMsg:  "tile dimensions must be positive",
		},
		{
			name: "width not a multiple of 4",
			cfg: &Config{
				Tile:    TileConfig{MaxWidth: 65, MaxHeight: 64},
				Logging: LoggingConfig{Level: "info"},
			},
			wantErr: true,
			errMsg:  "multiple of 4",
		},
		{
			name: "invalid log level",
			cfg: &Config{
				Tile:    TileConfig{MaxWidth: 64, MaxHeight: 64},
				Logging: LoggingConfig{Level: "invalid"},
			},
			wantErr: true,
			errMsg:  "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	key := "TEST_CONFIG_VAR"
	os.Unsetenv(key)
	assert.Equal(t, "default", getEnvWithDefault(key, "default"))

	os.Setenv(key, "test_value")
	assert.Equal(t, "test_value", getEnvWithDefault(key, "default"))
	os.Unsetenv(key)
}

func TestGetIntWithDefault(t *testing.T) {
	key := "TEST_INT_VAR"
	os.Unsetenv(key)
	assert.Equal(t, 42, getIntWithDefault(key, 42))

	os.Setenv(key, "100")
	assert.Equal(t, 100, getIntWithDefault(key, 42))

	os.Setenv(key, "invalid")
	assert.Equal(t, 42, getIntWithDefault(key, 42))
	os.Unsetenv(key)
}

func TestGetOverrideOrEnv(t *testing.T) {
	key := "TEST_OVERRIDE_VAR"

	os.Setenv(key, "env_value")
	assert.Equal(t, "override_value", getOverrideOrEnv("override_value", key, "default_value"))
	assert.Equal(t, "env_value", getOverrideOrEnv("", key, "default_value"))

	os.Unsetenv(key)
	assert.Equal(t, "default_value", getOverrideOrEnv("", key, "default_value"))
}

func TestGetGlobalConfig(t *testing.T) {
	cfg := GetGlobalConfig()
	_ = cfg
}
