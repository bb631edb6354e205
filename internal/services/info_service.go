// filepath: internal/services/info_service.go
package services

import (
	"flexnas/internal/models"
	"os"
	"time"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version   string
	StartTime time.Time
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time) *infoService {
	return &infoService{
		Version:   version,
		StartTime: startTime,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	hostname, _ := os.Hostname()
	return models.Info{
		ServiceName: "FlexNAS Management API",
		Version:     s.Version,
		UptimeSince: s.StartTime,
		Hostname:    hostname,
	}
}
