// filepath: internal/api/handlers/main.go
package handlers

import (
	"flexnas/internal/services"
	"flexnas/internal/services/auth"
)

// Handlers holds the services the API handlers call into.
// Handlers only translate HTTP to service calls; authorization is enforced
// by the router middleware and again inside the services.
type Handlers struct {
	Info     services.InfoService
	Session  auth.SessionService
	User     services.UserService
	Share    services.ShareService
	Backup   services.BackupService
	Quota    services.QuotaService
	Settings services.SettingsService
	Protocol services.ProtocolService
	Services services.ServiceManager
	Activity services.ActivityService
	Probe    services.HostProbe
	Files    services.FileBrowser
}
