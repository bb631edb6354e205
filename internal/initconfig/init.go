// filepath: internal/initconfig/init.go
package initconfig

import (
	"bytes"
	"context"
	"errors"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Run executes the one-time initialization from the init file. Entries that
// already exist are skipped; failures are logged and do not stop the server.
func Run(ctx context.Context, userSvc services.UserService, shareSvc services.ShareService, configPath string) {
	logging.Log.Infof("Initialization config file found at: %s. Processing...", configPath)

	config, err := Load(configPath)
	if err != nil {
		logging.Log.Errorf("Failed to load init config file '%s': %v", configPath, err)
		return
	}

	logging.Log.Infof("Found %d user(s) and %d share(s) in init config.", len(config.Users), len(config.Shares))

	admin, err := userSvc.GetUserByUsername(ctx, services.AdminUsername)
	if err != nil {
		logging.Log.Errorf("Init config needs the '%s' account: %v", services.AdminUsername, err)
		return
	}

	processUsers(ctx, userSvc, admin, config.Users)
	processShares(ctx, shareSvc, admin, config.Shares)

	clearPasswords(config, configPath)
}

// Load parses a YAML (.yaml, .yml) or TOML file.
func Load(path string) (*InitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var config InitConfig
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return &config, nil
	}
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return &config, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// processUsers creates the users that do not exist yet.
func processUsers(ctx context.Context, userSvc services.UserService, admin *models.User, users []InitUser) {
	for _, u := range users {
		if u.Name == "" || u.Password == "" {
			logging.Log.Warnf("Skipping user with empty name or password.")
			continue
		}

		_, err := userSvc.GetUserByUsername(ctx, u.Name)
		if err == nil {
			logging.Log.Infof("Skipping user: '%s' already exists.", u.Name)
			continue
		}
		if !errors.Is(err, services.ErrNotFound) {
			logging.Log.Errorf("Failed to check if user '%s' exists: %v", u.Name, err)
			continue
		}

		logging.Log.Infof("Creating user: '%s'...", u.Name)
		payload := models.UserCreatePayload{
			Username:    u.Name,
			Email:       u.Email,
			Password:    u.Password,
			Role:        models.Role(u.Role),
			Permissions: u.Permissions,
		}
		if _, err := userSvc.CreateUser(ctx, admin, payload); err != nil {
			logging.Log.Errorf("Failed to create user '%s': %v", u.Name, err)
		} else {
			logging.Log.Infof("Successfully created user: '%s'", u.Name)
		}
	}
}

// processShares creates the shares whose names are not taken yet.
func processShares(ctx context.Context, shareSvc services.ShareService, admin *models.User, shares []InitShare) {
	for _, s := range shares {
		if s.Name == "" {
			logging.Log.Warnf("Skipping share with empty name.")
			continue
		}

		logging.Log.Infof("Creating share: '%s'...", s.Name)
		payload := models.SharePayload{
			Name:         s.Name,
			Path:         s.Path,
			Description:  s.Description,
			IsPublic:     s.Public,
			AllowedUsers: s.AllowedUsers,
			ReadOnly:     s.ReadOnly,
		}
		_, err := shareSvc.CreateShare(ctx, admin, payload)
		switch {
		case errors.Is(err, services.ErrConflict):
			logging.Log.Infof("Skipping share: '%s' already exists.", s.Name)
		case err != nil:
			logging.Log.Errorf("Failed to create share '%s': %v", s.Name, err)
		default:
			logging.Log.Infof("Successfully created share: '%s'", s.Name)
		}
	}
}

// clearPasswords attempts to overwrite the init file with passwords removed.
func clearPasswords(config *InitConfig, configPath string) {
	logging.Log.Info("Attempting to clear passwords from init config file...")

	for i := range config.Users {
		config.Users[i].Password = ""
	}

	buf := new(bytes.Buffer)
	var err error
	if isYAML(configPath) {
		enc := yaml.NewEncoder(buf)
		enc.SetIndent(2)
		err = enc.Encode(config)
		if err == nil {
			err = enc.Close()
		}
	} else {
		err = toml.NewEncoder(buf).Encode(config)
	}
	if err != nil {
		logging.Log.Warnf("Could not re-encode config to clear passwords: %v", err)
		logging.Log.Warnf("SECURITY: Please manually remove passwords from '%s'", configPath)
		return
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		logging.Log.Warnf("Failed to write back to config file to clear passwords: %v", err)
		logging.Log.Warnf("SECURITY: Please manually remove passwords from '%s'", configPath)
		return
	}

	logging.Log.Info("Successfully cleared passwords from init config file.")
}
