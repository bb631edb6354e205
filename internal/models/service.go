package models

import (
	"strings"
	"time"
)

// ServiceTypeFileSharing marks service rows that are exposed as protocols.
const ServiceTypeFileSharing = "file_sharing"

// Service status labels derived from the enabled flag.
const (
	ServiceRunning = "running"
	ServiceStopped = "stopped"
)

// Control actions accepted by services and protocols.
const (
	ActionStart   = "start"
	ActionStop    = "stop"
	ActionRestart = "restart"
)

// Service is a stored service row. Protocols are services of type file_sharing.
type Service struct {
	ID        int64                  `json:"id"`
	Name      string                 `json:"name"`
	Type      string                 `json:"type"`
	Port      int                    `json:"port"`
	Enabled   bool                   `json:"isEnabled"`
	Config    map[string]interface{} `json:"config"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Status returns the label reported for the enabled flag.
func (s *Service) Status() string {
	if s.Enabled {
		return ServiceRunning
	}
	return ServiceStopped
}

// ServiceView is the /api/services representation of a row.
type ServiceView struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	IsEnabled   bool                   `json:"isEnabled"`
	StartType   string                 `json:"startType"`
	Config      map[string]interface{} `json:"config"`
	LastStarted time.Time              `json:"lastStarted"`
}

// NewServiceView labels a row for the generic services listing.
func NewServiceView(s Service) ServiceView {
	display := titleCase(strings.ReplaceAll(s.Name, "_", " "))
	return ServiceView{
		ID:          s.ID,
		Name:        s.Name,
		DisplayName: display,
		Description: display + " service",
		Status:      s.Status(),
		IsEnabled:   s.Enabled,
		StartType:   "automatic",
		Config:      nonNilConfig(s.Config),
		LastStarted: s.UpdatedAt,
	}
}

// ProtocolView is the /api/protocols representation of a file-sharing row.
type ProtocolView struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	Port        int                    `json:"port"`
	Status      string                 `json:"status"`
	IsEnabled   bool                   `json:"isEnabled"`
	Config      map[string]interface{} `json:"config"`
	LastUpdated time.Time              `json:"lastUpdated"`
}

// NewProtocolView labels a file-sharing row.
func NewProtocolView(s Service) ProtocolView {
	display := strings.ToUpper(s.Name)
	return ProtocolView{
		ID:          s.ID,
		Name:        s.Name,
		DisplayName: display,
		Description: display + " file sharing protocol",
		Port:        s.Port,
		Status:      s.Status(),
		IsEnabled:   s.Enabled,
		Config:      nonNilConfig(s.Config),
		LastUpdated: s.UpdatedAt,
	}
}

// ServiceUpdatePayload is the body of PUT /api/services/{id}.
type ServiceUpdatePayload struct {
	IsEnabled *bool                  `json:"isEnabled" validate:"required"`
	Config    map[string]interface{} `json:"config"`
}

// ProtocolUpdatePayload is the body of PUT /api/protocols/{name}.
// A nil Port keeps the stored port.
type ProtocolUpdatePayload struct {
	Port      *int                   `json:"port" validate:"omitempty,min=1,max=65535"`
	IsEnabled *bool                  `json:"isEnabled" validate:"required"`
	Config    map[string]interface{} `json:"config"`
}

func nonNilConfig(c map[string]interface{}) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	return c
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// DefaultProtocols returns the file-sharing rows seeded on a fresh database.
// All of them start disabled.
func DefaultProtocols() []Service {
	return []Service{
		{Name: "smb", Type: ServiceTypeFileSharing, Port: 445, Config: map[string]interface{}{
			"workgroup":     "WORKGROUP",
			"server_string": "FlexNAS Server",
			"netbios_name":  "FLEXNAS",
			"security":      "user",
			"map_to_guest":  "Bad User",
			"guest_account": "nobody",
		}},
		{Name: "nfs", Type: ServiceTypeFileSharing, Port: 2049, Config: map[string]interface{}{
			"threads":              8,
			"udp":                  true,
			"nfs_version":          "4.2",
			"allow_insecure_locks": false,
		}},
		{Name: "ftp", Type: ServiceTypeFileSharing, Port: 21, Config: map[string]interface{}{
			"anonymous_enable":  false,
			"local_enable":      true,
			"write_enable":      true,
			"local_umask":       "022",
			"max_clients":       10,
			"max_per_ip":        5,
			"passive_ports_min": 30000,
			"passive_ports_max": 31000,
		}},
		{Name: "webdav", Type: ServiceTypeFileSharing, Port: 8080, Config: map[string]interface{}{
			"authentication": "basic",
			"ssl_enable":     true,
			"digest_auth":    false,
			"cors_allow":     "*",
		}},
	}
}
