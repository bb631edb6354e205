package models

import "time"

// Backup job defaults.
const (
	DefaultRetentionDays = 30
	DefaultBackupType    = "incremental"
	BackupStatusActive   = "active"
)

// Backup is a backup-job definition. Running it only stamps timestamps.
type Backup struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	SourcePath      string     `json:"sourcePath"`
	DestinationPath string     `json:"destinationPath"`
	Schedule        string     `json:"schedule"`
	LastRun         *time.Time `json:"lastRun"`
	NextRun         *time.Time `json:"nextRun"`
	RetentionDays   int        `json:"retentionDays"`
	CreatedBy       int64      `json:"createdBy"`
	Creator         string     `json:"creator"`
	CreatedAt       time.Time  `json:"createdAt"`
	Status          string     `json:"status"`
	Type            string     `json:"type"`
}

// BackupPayload is the body of POST /api/backups.
type BackupPayload struct {
	Name            string `json:"name" validate:"required,max=128"`
	SourcePath      string `json:"sourcePath" validate:"required,max=4096"`
	DestinationPath string `json:"destinationPath" validate:"required,max=4096"`
	Schedule        string `json:"schedule" validate:"max=128"`
	RetentionDays   int    `json:"retentionDays" validate:"gte=0,lte=36500"`
	Type            string `json:"type" validate:"omitempty,oneof=full incremental differential"`
}
