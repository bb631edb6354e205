// filepath: internal/cli/root_test.go
package cli

import (
	"context"
	"flexnas/internal/config"
	"flexnas/internal/repository"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to reset the global config and flags between tests
func resetGlobals(t *testing.T) {
	cfg = nil
	port = 0
	logLevel = ""
	password = ""
	resetPassword = false
	jwtSecret = ""
	initConfig = ""
	auditEnabled = false
	filesRoot = ""
	webRoot = ""
	databasePath = ""
	cfgFile = filepath.Join(t.TempDir(), "nonexistent.toml")
}

func TestConfigPrecedence(t *testing.T) {
	// RootCmd.Execute() would start the server, so initializeConfig and
	// applyOverrides are exercised directly.

	t.Run("Defaults", func(t *testing.T) {
		resetGlobals(t)

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "flexnas.db", cfg.Database.Path)
		assert.Equal(t, 60, cfg.JWT.AccessDurationMin)
		assert.Equal(t, 10, cfg.Login.MaxFailures)
		assert.Equal(t, 5*time.Minute, cfg.LoginWindowDuration)
		assert.Equal(t, 5*time.Second, cfg.CommandTimeoutDuration)
		assert.Equal(t, "/", cfg.Files.Root)
	})

	t.Run("Environment Overrides Defaults", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("NAS_PORT", "9090")
		t.Setenv("NAS_LOG_LEVEL", "warn")
		t.Setenv("NAS_FILES_ROOT", "/srv")
		t.Setenv("NAS_RESET_PW", "true")
		t.Setenv("NAS_INIT_CONFIG", "/etc/flexnas/init.yaml")

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "/srv", cfg.Files.Root)
		assert.True(t, cfg.ResetAdminPassword)
		assert.Equal(t, "/etc/flexnas/init.yaml", initConfig)
	})

	t.Run("Flags Override Environment", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("NAS_PORT", "9090")
		t.Setenv("NAS_DATABASE_PATH", "/env/nas.db")

		port = 7070
		databasePath = "/flag/nas.db"

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "/flag/nas.db", cfg.Database.Path)
	})

	t.Run("Config File Loading", func(t *testing.T) {
		resetGlobals(t)

		content := []byte(`
[server]
port = 6060
protect_protocol_status = true
[logging]
level = "error"
[login]
max_failures = 3
window = "30s"
[files]
root = "/mnt/pool"
`)
		cfgFile = filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(cfgFile, content, 0644))

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, 6060, cfg.Server.Port)
		assert.True(t, cfg.Server.ProtectProtocolStatus)
		assert.Equal(t, "error", cfg.Logging.Level)
		assert.Equal(t, 3, cfg.Login.MaxFailures)
		assert.Equal(t, 30*time.Second, cfg.LoginWindowDuration)
		assert.Equal(t, "/mnt/pool", cfg.Files.Root)
	})

	t.Run("Config Path From Environment", func(t *testing.T) {
		resetGlobals(t)
		cfgFile = defaultConfigPath

		path := filepath.Join(t.TempDir(), "env.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 5050\n"), 0644))
		t.Setenv("NAS_CONFIG_PATH", path)

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)
		assert.Equal(t, 5050, cfg.Server.Port)
		assert.Equal(t, path, cfgFile)
	})

	t.Run("Invalid Window Fails", func(t *testing.T) {
		resetGlobals(t)
		cfgFile = filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("[login]\nwindow = \"soon\"\n"), 0644))

		err := initializeConfig(&cobra.Command{})
		assert.Error(t, err)
	})
}

func TestApplyOverridesAuditFlag(t *testing.T) {
	resetGlobals(t)
	t.Setenv("NAS_AUDIT_ENABLED", "true")

	cmd := &cobra.Command{}
	registerServeFlags(cmd)

	// Env alone turns auditing on.
	c := &config.Config{}
	applyOverrides(c, cmd.Flags())
	assert.True(t, c.Logging.AuditEnabled)

	// An explicit --audit-enabled=false beats the environment.
	require.NoError(t, cmd.Flags().Parse([]string{"--audit-enabled=false"}))
	c = &config.Config{}
	applyOverrides(c, cmd.Flags())
	assert.False(t, c.Logging.AuditEnabled)
}

func TestResolveJWTSecret(t *testing.T) {
	resetGlobals(t)
	cfgFile = filepath.Join(t.TempDir(), "config.toml")
	cfg = &config.Config{Server: config.ServerConfig{Port: 8080}}

	require.NoError(t, resolveJWTSecret())
	assert.Len(t, cfg.JWTSecret, 64)

	saved, err := config.LoadConfig(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, cfg.JWTSecret, saved.JWT.Secret)

	// A secret from the file is reused.
	cfg = saved
	require.NoError(t, resolveJWTSecret())
	assert.Equal(t, saved.JWT.Secret, cfg.JWTSecret)
}

func TestMigrateAndRecovery(t *testing.T) {
	resetGlobals(t)
	cfg = &config.Config{Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "nas.db")}}

	require.NoError(t, runMigration("up"))
	assert.Error(t, runMigration("sideways"))

	repo, err := repository.NewRepository(cfg)
	require.NoError(t, err)
	_, err = repo.DB.Exec("DELETE FROM services WHERE name = 'ftp'")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	require.NoError(t, runRecovery(context.Background(), false))

	repo, err = repository.NewRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()
	ftp, err := repo.GetServiceByName(context.Background(), "ftp")
	require.NoError(t, err)
	assert.Equal(t, 21, ftp.Port)
	assert.False(t, ftp.Enabled)
}
