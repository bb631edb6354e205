// filepath: internal/api/router.go
package api

import (
	"flexnas/internal/api/handlers"
	"flexnas/internal/config"
	"flexnas/internal/metrics"
	"flexnas/internal/models"
	"flexnas/internal/services/auth"
	"flexnas/internal/web"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware, RecoveryMiddleware, LoggingMiddleware)

	// Public endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/info", h.GetInfo).Methods("GET")
	apiRouter.HandleFunc("/login", h.Login).Methods("POST")
	if !cfg.Server.ProtectProtocolStatus {
		addProtocolStatusRoutes(apiRouter, h)
	}

	// Authenticated routes
	authed := apiRouter.PathPrefix("").Subrouter()
	authed.Use(am.AuthMiddleware)
	if cfg.Server.ProtectProtocolStatus {
		addProtocolStatusRoutes(authed, h)
	}

	authed.HandleFunc("/logout", h.Logout).Methods("POST", "GET")
	addUserRoutes(authed, h, am)
	addShareRoutes(authed, h, am)
	addBackupRoutes(authed, h, am)
	addQuotaRoutes(authed, h, am)
	addSettingsRoutes(authed, h, am)
	addServiceRoutes(authed, h, am)
	addProtocolRoutes(authed, h, am)
	addSystemRoutes(authed, h, am)

	// Optional web UI (public)
	web.AddDirRoutes(r, cfg.Server.WebRoot)

	return r
}

// withPermission returns a sub-router gated on p.
func withPermission(r *mux.Router, am *auth.Middleware, p models.Permission) *mux.Router {
	sub := r.PathPrefix("").Subrouter()
	sub.Use(am.RequirePermission(p))
	return sub
}

func addProtocolStatusRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/protocols", h.GetProtocols).Methods("GET")
	r.HandleFunc("/protocols/{name}", h.GetProtocol).Methods("GET")
}

// addUserRoutes configures profile routes for every user and account
// management for admins.
func addUserRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc("/me", h.GetUserMe).Methods("GET")
	r.HandleFunc("/me", h.UpdateUserMe).Methods("PATCH")
	r.HandleFunc("/users/{username}/quota", h.GetUserQuota).Methods("GET")

	adminRouter := r.PathPrefix("").Subrouter()
	adminRouter.Use(am.RequireAdmin)
	adminRouter.HandleFunc("/users", h.GetUsers).Methods("GET")
	adminRouter.HandleFunc("/users", h.CreateUser).Methods("POST")
	adminRouter.HandleFunc("/users/{username}", h.UpdateUser).Methods("PUT")
}

func addShareRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc("/shares", h.GetShares).Methods("GET")
	r.HandleFunc("/shares/{id}", h.GetShare).Methods("GET")

	manage := withPermission(r, am, models.PermManageShares)
	manage.HandleFunc("/shares", h.CreateShare).Methods("POST")
	manage.HandleFunc("/shares/{id}", h.UpdateShare).Methods("PUT")
	manage.HandleFunc("/shares/{id}", h.DeleteShare).Methods("DELETE")
}

func addBackupRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc("/backups", h.GetBackups).Methods("GET")
	r.HandleFunc("/backups/{id}", h.GetBackup).Methods("GET")

	manage := withPermission(r, am, models.PermManageBackups)
	manage.HandleFunc("/backups", h.CreateBackup).Methods("POST")
	manage.HandleFunc("/backups/{id}", h.DeleteBackup).Methods("DELETE")
	manage.HandleFunc("/backups/{id}/run", h.RunBackup).Methods("POST")
}

func addQuotaRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc("/quotas", h.GetQuotas).Methods("GET")
	r.HandleFunc("/quotas/{id}", h.GetQuota).Methods("GET")

	adminRouter := r.PathPrefix("").Subrouter()
	adminRouter.Use(am.RequireAdmin)
	adminRouter.HandleFunc("/quotas", h.CreateQuota).Methods("POST")
	adminRouter.HandleFunc("/quotas/{id}", h.UpdateQuota).Methods("PUT")
	adminRouter.HandleFunc("/quotas/{id}", h.DeleteQuota).Methods("DELETE")
}

func addSettingsRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	const section = "/settings/{section:system|network|storage}"
	r.HandleFunc("/settings", h.GetSettings).Methods("GET")
	r.HandleFunc(section, h.GetSettingsSection).Methods("GET")

	manage := withPermission(r, am, models.PermManageSystem)
	manage.HandleFunc("/settings", h.UpdateSettings).Methods("PUT")
	manage.HandleFunc(section, h.UpdateSettingsSection).Methods("PUT")
}

func addServiceRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc("/services", h.GetServices).Methods("GET")
	r.HandleFunc("/services/{id}", h.GetService).Methods("GET")

	manage := withPermission(r, am, models.PermManageSystem)
	manage.HandleFunc("/services/{id}", h.UpdateService).Methods("PUT")
	manage.HandleFunc("/services/{id}/{action}", h.ControlService).Methods("POST")
}

func addProtocolRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc("/protocols/{name}/shares", h.GetProtocolShares).Methods("GET")
	r.HandleFunc("/protocols/{name}/shares/{id}", h.GetProtocolShare).Methods("GET")

	system := withPermission(r, am, models.PermManageSystem)
	system.HandleFunc("/protocols/{name}", h.UpdateProtocol).Methods("PUT")
	system.HandleFunc("/protocols/{name}/{action}", h.ControlProtocol).Methods("POST")

	shares := withPermission(r, am, models.PermManageShares)
	shares.HandleFunc("/protocols/{name}/shares/{id}", h.UpdateProtocolShare).Methods("PUT")
}

func addSystemRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc("/system-status", h.GetSystemStatus).Methods("GET")
	r.HandleFunc("/volumes", h.GetVolumes).Methods("GET")
	r.HandleFunc("/files", h.GetFiles).Methods("GET")

	logs := withPermission(r, am, models.PermViewLogs)
	logs.HandleFunc("/activity-log", h.GetActivityLog).Methods("GET")
}
