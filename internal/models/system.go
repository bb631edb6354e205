package models

import "time"

// Health labels reported by the host probe.
const (
	SystemHealthy = "healthy"
	SystemWarning = "warning"
)

// HealthThresholdPercent is the utilisation at which the system reports a warning.
const HealthThresholdPercent = 80.0

// SystemStatus is a point-in-time utilisation report.
type SystemStatus struct {
	CPUUsage     float64 `json:"cpuUsage"`
	MemoryUsage  float64 `json:"memoryUsage"`
	StorageUsage float64 `json:"storageUsage"`
	TotalStorage string  `json:"totalStorage"`
	UsedStorage  string  `json:"usedStorage"`
	FreeStorage  string  `json:"freeStorage"`
	SystemStatus string  `json:"systemStatus"`
}

// HealthLabel classifies the three utilisation percentages.
func HealthLabel(cpu, mem, disk float64) string {
	if cpu < HealthThresholdPercent && mem < HealthThresholdPercent && disk < HealthThresholdPercent {
		return SystemHealthy
	}
	return SystemWarning
}

// Volume describes one mounted partition.
type Volume struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"fstype"`
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
	Free       uint64  `json:"free"`
	Percent    float64 `json:"percent"`
}

// FileEntry is one item of a directory listing.
type FileEntry struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Type        string    `json:"type"`
	IsDirectory bool      `json:"isDirectory"`
	Size        *int64    `json:"size"`
	Modified    time.Time `json:"modified"`
}
