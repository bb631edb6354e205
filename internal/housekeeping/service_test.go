// filepath: internal/housekeeping/service_test.go
package housekeeping

import (
	"context"
	"errors"
	"flexnas/internal/metrics"
	"flexnas/internal/models"
	"flexnas/internal/services/mocks"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewService_ClampsInterval(t *testing.T) {
	s := NewService(0)
	assert.Equal(t, MinInterval, s.Interval)
}

func TestRunOnce_ContinuesAfterFailure(t *testing.T) {
	var ran int32
	failing := Task{Name: "failing", Run: func(ctx context.Context) error { return errors.New("boom") }}
	counting := Task{Name: "counting", Run: func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	}}

	before := testutil.ToFloat64(metrics.HousekeepingRuns.WithLabelValues("failing", "error"))
	s := NewService(time.Minute, failing, counting)
	s.RunOnce()

	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HousekeepingRuns.WithLabelValues("failing", "error")))
}

func TestRunOnce_BoundsTaskWithTimeout(t *testing.T) {
	var deadline bool
	task := Task{Name: "deadline", Run: func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	}}
	s := NewService(time.Minute, task)
	s.Timeout = 50 * time.Millisecond
	s.RunOnce()
	assert.True(t, deadline)
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	ran := make(chan struct{}, 1)
	task := Task{Name: "signal", Run: func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}}

	s := NewService(time.Hour, task)
	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run on start")
	}
	s.Stop()
	s.Stop() // idempotent
}

func TestHostSampleTask(t *testing.T) {
	probe := new(mocks.MockHostProbe)
	probe.On("Status", mock.Anything).Return(&models.SystemStatus{
		CPUUsage:     12.5,
		MemoryUsage:  40,
		StorageUsage: 81,
	}, nil).Once()
	probe.On("Status", mock.Anything).Return(nil, errors.New("no /proc")).Once()

	task := HostSampleTask(probe)
	assert.Equal(t, TaskHostSample, task.Name)

	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, 12.5, testutil.ToFloat64(metrics.HostUsage.WithLabelValues("cpu")))
	assert.Equal(t, 40.0, testutil.ToFloat64(metrics.HostUsage.WithLabelValues("memory")))
	assert.Equal(t, 81.0, testutil.ToFloat64(metrics.HostUsage.WithLabelValues("storage")))

	assert.Error(t, task.Run(context.Background()))
	// Gauges keep the last good reading.
	assert.Equal(t, 12.5, testutil.ToFloat64(metrics.HostUsage.WithLabelValues("cpu")))
	probe.AssertExpectations(t)
}
