// filepath: internal/services/interfaces.go
package services

import (
	"context"
	"flexnas/internal/config"
	"flexnas/internal/models"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "create_share", "login")
	// actor: who did it (username)
	// resource: what was affected (e.g., "share:media", "user:alice")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// ActivityService appends to and reads the activity log.
type ActivityService interface {
	Record(ctx context.Context, actor *models.User, action, details string)
	ListRecent(ctx context.Context, limit int) ([]models.ActivityEntry, error)
}

// UserService defines the interface for the user service.
type UserService interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, actor *models.User, payload models.UserCreatePayload) (*models.User, error)
	UpdateUser(ctx context.Context, actor *models.User, username string, payload models.UserUpdatePayload) (*models.User, error)
	UpdateOwnPassword(ctx context.Context, actor *models.User, password string) error
	InitializeAdminUser(ctx context.Context, cfg *config.Config) error
}

// ShareService defines the interface for the share registry.
type ShareService interface {
	ListShares(ctx context.Context, actor *models.User) ([]models.Share, error)
	GetShare(ctx context.Context, actor *models.User, id int64) (*models.Share, error)
	CreateShare(ctx context.Context, actor *models.User, payload models.SharePayload) (*models.Share, error)
	UpdateShare(ctx context.Context, actor *models.User, id int64, payload models.SharePayload) (*models.Share, error)
	DeleteShare(ctx context.Context, actor *models.User, id int64) error
}

// BackupService defines the interface for the backup registry.
type BackupService interface {
	ListBackups(ctx context.Context) ([]models.Backup, error)
	GetBackup(ctx context.Context, id int64) (*models.Backup, error)
	CreateBackup(ctx context.Context, actor *models.User, payload models.BackupPayload) (*models.Backup, error)
	RunBackup(ctx context.Context, actor *models.User, id int64) (*models.Backup, error)
	DeleteBackup(ctx context.Context, actor *models.User, id int64) error
}

// QuotaService defines the interface for the quota ledger.
type QuotaService interface {
	ListQuotas(ctx context.Context, actor *models.User) ([]models.Quota, error)
	GetQuota(ctx context.Context, actor *models.User, id int64) (*models.Quota, error)
	GetUserQuotas(ctx context.Context, actor *models.User, username string) ([]models.Quota, error)
	CreateQuota(ctx context.Context, actor *models.User, payload models.QuotaCreatePayload) (*models.Quota, error)
	UpdateQuota(ctx context.Context, actor *models.User, id int64, payload models.QuotaUpdatePayload) (*models.Quota, error)
	DeleteQuota(ctx context.Context, actor *models.User, id int64) error
}

// SettingsService defines the interface for the settings store.
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, actor *models.User, payload models.SettingsUpdatePayload) (*models.Settings, error)
	GetSystemSettings(ctx context.Context) (*models.SystemSettings, error)
	UpdateSystemSettings(ctx context.Context, actor *models.User, st models.SystemSettings) (*models.SystemSettings, error)
	GetNetworkSettings(ctx context.Context) (*models.NetworkSettings, error)
	UpdateNetworkSettings(ctx context.Context, actor *models.User, ns models.NetworkSettings) (*models.NetworkSettings, error)
	GetStorageSettings(ctx context.Context) (*models.StorageSettings, error)
	UpdateStorageSettings(ctx context.Context, actor *models.User, st models.StorageSettings) (*models.StorageSettings, error)
}

// ProtocolService defines the interface for the file-sharing protocol facade.
type ProtocolService interface {
	ListProtocols(ctx context.Context) ([]models.ProtocolView, error)
	GetProtocol(ctx context.Context, name string) (*models.ProtocolView, error)
	UpdateProtocol(ctx context.Context, actor *models.User, name string, payload models.ProtocolUpdatePayload) (*models.ProtocolView, error)
	ControlProtocol(ctx context.Context, actor *models.User, name, action string) (*models.ProtocolView, error)
	ListProtocolShares(ctx context.Context, name string) ([]models.ProtocolShare, error)
	GetProtocolShare(ctx context.Context, name string, shareID int64) (*models.ProtocolShare, error)
	UpdateProtocolShare(ctx context.Context, actor *models.User, name string, shareID int64, payload models.ProtocolSharePayload) (*models.ProtocolShare, error)
}

// ServiceManager defines the interface for the generic /services facade.
type ServiceManager interface {
	ListServices(ctx context.Context) ([]models.ServiceView, error)
	GetService(ctx context.Context, id int64) (*models.ServiceView, error)
	UpdateService(ctx context.Context, actor *models.User, id int64, payload models.ServiceUpdatePayload) (*models.ServiceView, error)
	ControlService(ctx context.Context, actor *models.User, id int64, action string) (*models.ServiceView, error)
}

// HostProbe reads host telemetry.
type HostProbe interface {
	Status(ctx context.Context) (*models.SystemStatus, error)
	Volumes(ctx context.Context) ([]models.Volume, error)
}

// HostRenamer applies a hostname to the operating system.
type HostRenamer interface {
	SetHostname(ctx context.Context, name string) error
}

// FileBrowser lists directories below a fixed root.
type FileBrowser interface {
	List(path string) ([]models.FileEntry, error)
}
