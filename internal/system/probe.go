// Package system reads host telemetry and applies OS-level changes.
package system

import (
	"context"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

const bytesPerGB = 1024 * 1024 * 1024

// Probe reports utilisation through gopsutil. The function fields exist so
// tests can substitute canned readings.
type Probe struct {
	Root string

	CPUPercent func(ctx context.Context) (float64, error)
	MemPercent func(ctx context.Context) (float64, error)
	DiskUsage  func(ctx context.Context, path string) (*disk.UsageStat, error)
	Partitions func(ctx context.Context) ([]disk.PartitionStat, error)
}

var _ services.HostProbe = (*Probe)(nil)

// NewProbe returns a Probe measuring storage on the root filesystem.
func NewProbe() *Probe {
	return &Probe{
		Root:       "/",
		CPUPercent: cpuPercent,
		MemPercent: memPercent,
		DiskUsage:  disk.UsageWithContext,
		Partitions: func(ctx context.Context) ([]disk.PartitionStat, error) {
			return disk.PartitionsWithContext(ctx, false)
		},
	}
}

func cpuPercent(ctx context.Context) (float64, error) {
	// Zero interval compares against the previous call.
	values, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}
	return values[0], nil
}

func memPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// Status samples CPU, memory and root filesystem usage.
func (p *Probe) Status(ctx context.Context) (*models.SystemStatus, error) {
	cpuUsage, err := p.CPUPercent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	memUsage, err := p.MemPercent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory usage: %w", err)
	}
	usage, err := p.DiskUsage(ctx, p.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage of '%s': %w", p.Root, err)
	}

	return &models.SystemStatus{
		CPUUsage:     cpuUsage,
		MemoryUsage:  memUsage,
		StorageUsage: usage.UsedPercent,
		TotalStorage: formatGB(usage.Total),
		UsedStorage:  formatGB(usage.Used),
		FreeStorage:  formatGB(usage.Free),
		SystemStatus: models.HealthLabel(cpuUsage, memUsage, usage.UsedPercent),
	}, nil
}

// Volumes lists mounted partitions with their usage. Partitions whose
// usage cannot be read are left out.
func (p *Probe) Volumes(ctx context.Context) ([]models.Volume, error) {
	parts, err := p.Partitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	volumes := make([]models.Volume, 0, len(parts))
	for _, part := range parts {
		usage, err := p.DiskUsage(ctx, part.Mountpoint)
		if err != nil {
			logging.Log.Debugf("Probe: skipping '%s': %v", part.Mountpoint, err)
			continue
		}
		volumes = append(volumes, models.Volume{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Fstype:     part.Fstype,
			Total:      usage.Total,
			Used:       usage.Used,
			Free:       usage.Free,
			Percent:    usage.UsedPercent,
		})
	}
	return volumes, nil
}

func formatGB(b uint64) string {
	gb := math.Round(float64(b)/bytesPerGB*100) / 100
	return fmt.Sprintf("%.2fGB", gb)
}
