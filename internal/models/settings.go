package models

import "time"

// SettingsKey identifies the single logical record of each settings table.
const SettingsKey = "default"

// SystemSettings holds host-level configuration.
type SystemSettings struct {
	Hostname               string     `json:"hostname" validate:"required,hostname_rfc1123,max=253"`
	Timezone               string     `json:"timezone" validate:"required,timezone"`
	EnableAutomaticUpdates bool       `json:"enableAutomaticUpdates"`
	EnableSSH              bool       `json:"enableSSH"`
	SSHPort                int        `json:"sshPort" validate:"min=1,max=65535"`
	UpdatedAt              *time.Time `json:"updatedAt,omitempty"`
}

// NetworkSettings holds the appliance's network identity.
type NetworkSettings struct {
	Hostname    string     `json:"hostname" validate:"required,hostname_rfc1123,max=253"`
	Domain      string     `json:"domain" validate:"omitempty,fqdn"`
	IPAddress   string     `json:"ipAddress" validate:"omitempty,ip"`
	SubnetMask  string     `json:"subnetMask" validate:"omitempty,ipv4"`
	Gateway     string     `json:"gateway" validate:"omitempty,ip"`
	DNSServers  []string   `json:"dnsServers" validate:"dive,ip"`
	DHCPEnabled bool       `json:"dhcpEnabled"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// StorageSettings holds RAID and maintenance preferences. They are inert records.
type StorageSettings struct {
	RAIDLevel              string     `json:"raidLevel" validate:"required,max=32"`
	EnableAutoRaidRepair   bool       `json:"enableAutoRaidRepair"`
	EnableSmartMonitoring  bool       `json:"enableSmartMonitoring"`
	EnableAutomatedBackups bool       `json:"enableAutomatedBackups"`
	BackupSchedule         string     `json:"backupSchedule" validate:"required,max=128"`
	UpdatedAt              *time.Time `json:"updatedAt,omitempty"`
}

// Settings aggregates all three sections for GET /api/settings.
type Settings struct {
	System  SystemSettings  `json:"system"`
	Network NetworkSettings `json:"network"`
	Storage StorageSettings `json:"storage"`
}

// SettingsUpdatePayload is the body of PUT /api/settings.
// Each supplied section replaces the stored record; nil sections are untouched.
type SettingsUpdatePayload struct {
	System  *SystemSettings  `json:"system"`
	Network *NetworkSettings `json:"network"`
	Storage *StorageSettings `json:"storage"`
}

// DefaultSystemSettings is reported when no system record has been stored.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{Timezone: "UTC", SSHPort: 22}
}

// DefaultNetworkSettings is reported when no network record has been stored.
func DefaultNetworkSettings() NetworkSettings {
	return NetworkSettings{DNSServers: []string{}, DHCPEnabled: true}
}

// DefaultStorageSettings is reported when no storage record has been stored.
func DefaultStorageSettings() StorageSettings {
	return StorageSettings{
		RAIDLevel:             "RAID 1",
		EnableAutoRaidRepair:  true,
		EnableSmartMonitoring: true,
		BackupSchedule:        "0 0 * * *",
	}
}
