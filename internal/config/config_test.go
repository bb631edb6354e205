// filepath: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{Path: "flexnas.db"},
		Logging:  LoggingConfig{Level: "info"},
		JWT:      JWTConfig{AccessDurationMin: 60},
		Login:    LoginConfig{MaxFailures: 10},
	}
}

func TestConfig_ParseAndValidate(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Login.Window = "10m"
		cfg.Host.CommandTimeout = "2s"
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.Equal(t, 10*time.Minute, cfg.LoginWindowDuration)
		assert.Equal(t, 2*time.Second, cfg.CommandTimeoutDuration)
	})

	t.Run("Default Fallback", func(t *testing.T) {
		cfg := validConfig()
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.Equal(t, "5m", cfg.Login.Window)
		assert.Equal(t, 5*time.Minute, cfg.LoginWindowDuration)
		assert.Equal(t, 5*time.Second, cfg.CommandTimeoutDuration)
		assert.Equal(t, 30*time.Second, cfg.SampleIntervalDuration)
	})

	t.Run("Sampling Disabled", func(t *testing.T) {
		cfg := validConfig()
		cfg.Host.SampleInterval = "0"
		require.NoError(t, cfg.ParseAndValidate())
		assert.Zero(t, cfg.SampleIntervalDuration)

		cfg.Host.SampleInterval = "-1s"
		assert.Error(t, cfg.ParseAndValidate())
	})

	t.Run("Invalid Duration", func(t *testing.T) {
		cfg := validConfig()
		cfg.Host.CommandTimeout = "soon"
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid host.command_timeout")
	})

	t.Run("Port Out Of Range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = 70000
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Config.Server.Port")
	})

	t.Run("Unknown Log Level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Level = "loud"
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "oneof")
	})
}

func TestLoadAndSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := []byte(`
[server]
port = 6060
protect_protocol_status = true

[database]
path = "/var/lib/flexnas/nas.db"

[jwt]
access_duration_min = 15
secret = "persisted"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.True(t, cfg.Server.ProtectProtocolStatus)
	assert.Equal(t, "/var/lib/flexnas/nas.db", cfg.Database.Path)
	assert.Equal(t, 15, cfg.JWT.AccessDurationMin)
	assert.Equal(t, "persisted", cfg.JWT.Secret)

	// Runtime-only values must never reach the file.
	cfg.JWTSecret = "runtime-only"
	cfg.AdminPassword = "hunter22"
	cfg.JWT.Secret = "rotated"
	require.NoError(t, SaveConfig(path, cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "runtime-only")
	assert.NotContains(t, string(raw), "hunter22")

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "rotated", reloaded.JWT.Secret)
	assert.Equal(t, 6060, reloaded.Server.Port)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
