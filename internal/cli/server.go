// filepath: internal/cli/server.go
package cli

import (
	"context"
	"flexnas/internal/api"
	"flexnas/internal/api/handlers"
	"flexnas/internal/audit"
	"flexnas/internal/config"
	"flexnas/internal/housekeeping"
	"flexnas/internal/initconfig"
	"flexnas/internal/logging"
	"flexnas/internal/repository"
	"flexnas/internal/services"
	"flexnas/internal/services/auth"
	"flexnas/internal/storage"
	"flexnas/internal/system"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 30 * time.Second

// resolveJWTSecret picks the signing secret: flag/env first, then the config
// file, and otherwise a fresh random one that is saved back to the file.
func resolveJWTSecret() error {
	if cfg.JWTSecret != "" {
		return nil
	}
	if cfg.JWT.Secret != "" {
		logging.Log.Infof("Using JWT secret loaded from %s.", cfgFile)
		cfg.JWTSecret = cfg.JWT.Secret
		return nil
	}

	logging.Log.Info("Generating new random JWT secret...")
	newSecret, err := auth.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	cfg.JWT.Secret = newSecret
	cfg.JWTSecret = newSecret
	if err := config.SaveConfig(cfgFile, cfg); err != nil {
		logging.Log.Warnf("Failed to save new JWT secret to %s: %v", cfgFile, err)
	} else {
		logging.Log.Infof("New JWT secret saved to %s.", cfgFile)
	}
	return nil
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	if err := resolveJWTSecret(); err != nil {
		return err
	}

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		return err
	}

	// Service Initialization
	loggerAuditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)
	activityService := services.NewActivityService(repo, loggerAuditor)
	userService := services.NewUserService(repo, activityService)
	tokenService := auth.NewTokenService(cfg, userService)
	shareService := services.NewShareService(repo, activityService)
	throttle := auth.NewThrottle(cfg.Login.MaxFailures, cfg.LoginWindowDuration)

	ctx := context.Background()
	if err := userService.InitializeAdminUser(ctx, cfg); err != nil {
		return fmt.Errorf("failed to handle admin user: %w", err)
	}

	if initConfig != "" {
		logging.Log.Infof("Found init_config, running initialization from: %s", initConfig)
		initconfig.Run(ctx, userService, shareService, initConfig)
	}

	probe := system.NewProbe()
	var hk *housekeeping.Service
	if cfg.SampleIntervalDuration > 0 {
		hk = housekeeping.NewService(cfg.SampleIntervalDuration, housekeeping.HostSampleTask(probe))
		hk.Start()
	}

	h := &handlers.Handlers{
		Info:     services.NewInfoService(Version, StartTime),
		Session:  auth.NewSessionService(repo, userService, tokenService, throttle, activityService),
		User:     userService,
		Share:    shareService,
		Backup:   services.NewBackupService(repo, activityService),
		Quota:    services.NewQuotaService(repo, activityService),
		Settings: services.NewSettingsService(repo, activityService, system.NewHostnameSetter(cfg.Host.HostnameCommand), cfg.CommandTimeoutDuration),
		Protocol: services.NewProtocolService(repo, activityService),
		Services: services.NewServiceManager(repo, activityService),
		Activity: activityService,
		Probe:    probe,
		Files:    storage.NewBrowser(cfg.Files.Root),
	}

	r := api.SetupRouter(h, auth.NewMiddleware(tokenService), cfg)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logging.Log.Infof("Server starting on %s (files root: %s)", serverAddr, cfg.Files.Root)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		if hk != nil {
			hk.Stop()
		}
		return fmt.Errorf("server failed to start: %w", err)
	case <-stop:
	}
	logging.Log.Info("Shutting down server...")

	if hk != nil {
		hk.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
