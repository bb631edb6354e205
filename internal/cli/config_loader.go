// filepath: internal/cli/config_loader.go
package cli

import (
	"errors"
	"flexnas/internal/config"
	"flexnas/internal/logging"
	"fmt"
	"os"
	"strconv"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultConfigPath = "config.toml"

var (
	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags variables
	cfgFile       string
	password      string
	port          int
	logLevel      string
	resetPassword bool
	jwtSecret     string
	initConfig    string
	auditEnabled  bool
	filesRoot     string
	webRoot       string
	databasePath  string
)

func registerGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config_path", defaultConfigPath, "Path to the base configuration file. (Env: NAS_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (trace, debug, info, warn, error). (Env: NAS_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&databasePath, "database-path", "", "Path to the SQLite database file. (Env: NAS_DATABASE_PATH)")
}

// registerServeFlags adds the server-only flags to cmd.
func registerServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&password, "password", "", "Password for the 'admin' user. (Env: NAS_PASSWORD)")
	cmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: NAS_PORT)")
	cmd.Flags().BoolVar(&resetPassword, "reset_pw", false, "If true, reset admin password on startup. (Env: NAS_RESET_PW=true)")
	cmd.Flags().StringVar(&jwtSecret, "jwt-secret", "", "Secret key for signing JWTs. (Env: NAS_JWT_SECRET)")
	cmd.Flags().StringVar(&initConfig, "init_config", "", "Path to a TOML or YAML file for one-time creation of users and shares. (Env: NAS_INIT_CONFIG)")
	cmd.Flags().BoolVar(&auditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: NAS_AUDIT_ENABLED=true)")
	cmd.Flags().StringVar(&filesRoot, "files-root", "", "Directory the file browser is confined to. (Env: NAS_FILES_ROOT)")
	cmd.Flags().StringVar(&webRoot, "web-root", "", "Directory with a built web UI to serve at '/'. (Env: NAS_WEB_ROOT)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("NAS_CONFIG_PATH"); envPath != "" && cfgFile == defaultConfigPath {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg, cmd.Flags())

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)
	goose.SetLogger(logging.Log)

	return nil
}

func applyOverrides(c *config.Config, flags *pflag.FlagSet) {
	getEnv := func(key string) string { return os.Getenv(key) }

	// --- Environment Variables ---
	if v := getEnv("NAS_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
	if v := getEnv("NAS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getEnv("NAS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("NAS_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}
	if v := getEnv("NAS_RESET_PW"); v == "true" {
		c.ResetAdminPassword = true
	}
	if v := getEnv("NAS_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getEnv("NAS_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := getEnv("NAS_FILES_ROOT"); v != "" {
		c.Files.Root = v
	}
	if v := getEnv("NAS_WEB_ROOT"); v != "" {
		c.Server.WebRoot = v
	}

	// --- CLI Flags ---
	if password != "" {
		c.AdminPassword = password
	}
	if port != 0 {
		c.Server.Port = port
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if flags != nil && flags.Changed("audit-enabled") {
		c.Logging.AuditEnabled = auditEnabled
	}
	if resetPassword {
		c.ResetAdminPassword = true
	}
	if jwtSecret != "" {
		c.JWTSecret = jwtSecret
	}
	if databasePath != "" {
		c.Database.Path = databasePath
	}
	if filesRoot != "" {
		c.Files.Root = filesRoot
	}
	if webRoot != "" {
		c.Server.WebRoot = webRoot
	}
	if initConfig == "" {
		if v := getEnv("NAS_INIT_CONFIG"); v != "" {
			initConfig = v
		}
	}

	// --- Defaults ---
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "flexnas.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.JWT.AccessDurationMin == 0 {
		c.JWT.AccessDurationMin = 60
	}
	if c.Login.MaxFailures == 0 {
		c.Login.MaxFailures = 10
	}
	if c.Files.Root == "" {
		c.Files.Root = "/"
	}
}
