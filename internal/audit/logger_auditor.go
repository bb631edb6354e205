// filepath: internal/audit/logger_auditor.go
package audit

import (
	"context"
	"flexnas/internal/logging"
	"flexnas/internal/services"

	"github.com/sirupsen/logrus"
)

// Ensure LoggerAuditor implements services.Auditor
var _ services.Auditor = (*LoggerAuditor)(nil)

// LoggerAuditor writes audit events to the application log.
type LoggerAuditor struct {
	enabled bool
	log     *logrus.Logger
}

// NewLoggerAuditor creates a LoggerAuditor backed by the process-wide logger.
func NewLoggerAuditor(enabled bool) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled, log: logging.Log}
}

// NewLoggerAuditorWith creates a LoggerAuditor backed by log.
func NewLoggerAuditorWith(enabled bool, log *logrus.Logger) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled, log: log}
}

// Log records an event using logrus if auditing is enabled.
func (a *LoggerAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	if !a.enabled {
		return
	}

	fields := logrus.Fields{
		"audit_action":   action,
		"audit_actor":    actor,
		"audit_resource": resource,
	}
	if id := services.RequestIDFromContext(ctx); id != "" {
		fields["request_id"] = id
	}

	for k, v := range details {
		fields["detail."+k] = v
	}

	// Log at INFO level with a specific prefix to make it easy to grep
	a.log.WithFields(fields).Info("AUDIT EVENT")
}
