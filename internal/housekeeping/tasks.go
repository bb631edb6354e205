// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"context"
	"flexnas/internal/metrics"
	"flexnas/internal/services"
)

// TaskHostSample is the name of the host telemetry task.
const TaskHostSample = "host_sample"

// HostSampleTask reads the probe and publishes the utilisation gauges.
// It also refreshes the probe's CPU baseline.
func HostSampleTask(probe services.HostProbe) Task {
	return Task{
		Name: TaskHostSample,
		Run: func(ctx context.Context) error {
			status, err := probe.Status(ctx)
			if err != nil {
				return err
			}
			metrics.HostUsage.WithLabelValues("cpu").Set(status.CPUUsage)
			metrics.HostUsage.WithLabelValues("memory").Set(status.MemoryUsage)
			metrics.HostUsage.WithLabelValues("storage").Set(status.StorageUsage)
			return nil
		},
	}
}
