// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server" mapstructure:"server"`
	Database DatabaseConfig `toml:"database" mapstructure:"database"`
	Logging  LoggingConfig  `toml:"logging" mapstructure:"logging"`
	JWT      JWTConfig      `toml:"jwt" mapstructure:"jwt"`
	Login    LoginConfig    `toml:"login" mapstructure:"login"`
	Host     HostConfig     `toml:"host" mapstructure:"host"`
	Files    FilesConfig    `toml:"files" mapstructure:"files"`

	AdminPassword      string `toml:"-" mapstructure:"-"` // Not loaded from file, set by CLI/env
	ResetAdminPassword bool   `toml:"-" mapstructure:"-"` // Not loaded from file, set by CLI/env
	JWTSecret          string `toml:"-" mapstructure:"-"` // Runtime secret (from env, flag, or file)

	LoginWindowDuration    time.Duration `toml:"-" mapstructure:"-"` // Runtime computed value
	CommandTimeoutDuration time.Duration `toml:"-" mapstructure:"-"` // Runtime computed value
	SampleIntervalDuration time.Duration `toml:"-" mapstructure:"-"` // Runtime computed value, 0 disables sampling
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host    string `toml:"host" mapstructure:"host"`
	Port    int    `toml:"port" mapstructure:"port" validate:"min=1,max=65535"`
	WebRoot string `toml:"web_root" mapstructure:"web_root"` // Optional directory with a built web UI
	// ProtectProtocolStatus moves GET /api/protocols behind authentication.
	ProtectProtocolStatus bool `toml:"protect_protocol_status" mapstructure:"protect_protocol_status"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path          string `toml:"path" mapstructure:"path" validate:"required"`
	BusyTimeoutMs int    `toml:"busy_timeout_ms" mapstructure:"busy_timeout_ms" validate:"gte=0"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error"`
	AuditEnabled bool   `toml:"audit_enabled" mapstructure:"audit_enabled"`
}

// JWTConfig holds settings for token generation.
type JWTConfig struct {
	AccessDurationMin int    `toml:"access_duration_min" mapstructure:"access_duration_min" validate:"min=1"`
	Secret            string `toml:"secret" mapstructure:"secret"` // Persisted secret
}

// LoginConfig holds the failed-login throttle settings.
type LoginConfig struct {
	MaxFailures int    `toml:"max_failures" mapstructure:"max_failures" validate:"min=1"`
	Window      string `toml:"window" mapstructure:"window"` // e.g. "5m"
}

// HostConfig holds settings for OS-level collaborators.
type HostConfig struct {
	HostnameCommand string `toml:"hostname_command" mapstructure:"hostname_command"`
	CommandTimeout  string `toml:"command_timeout" mapstructure:"command_timeout"` // e.g. "5s"
	SampleInterval  string `toml:"sample_interval" mapstructure:"sample_interval"` // e.g. "30s", "0" disables
}

// FilesConfig holds settings for the directory browser.
type FilesConfig struct {
	Root string `toml:"root" mapstructure:"root"`
}

var validate = validator.New()

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used to persist the auto-generated JWT secret.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values
// and checks value ranges.
func (c *Config) ParseAndValidate() error {
	if c.Login.Window == "" {
		c.Login.Window = "5m"
	}
	window, err := time.ParseDuration(c.Login.Window)
	if err != nil || window <= 0 {
		return fmt.Errorf("invalid login.window: %q", c.Login.Window)
	}
	c.LoginWindowDuration = window

	if c.Host.CommandTimeout == "" {
		c.Host.CommandTimeout = "5s"
	}
	timeout, err := time.ParseDuration(c.Host.CommandTimeout)
	if err != nil || timeout <= 0 {
		return fmt.Errorf("invalid host.command_timeout: %q", c.Host.CommandTimeout)
	}
	c.CommandTimeoutDuration = timeout

	if c.Host.SampleInterval == "" {
		c.Host.SampleInterval = "30s"
	}
	interval, err := time.ParseDuration(c.Host.SampleInterval)
	if err != nil || interval < 0 {
		return fmt.Errorf("invalid host.sample_interval: %q", c.Host.SampleInterval)
	}
	c.SampleIntervalDuration = interval

	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into a readable message.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var msgs []string
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value: %v)", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
