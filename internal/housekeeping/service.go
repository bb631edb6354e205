// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"context"
	"flexnas/internal/logging"
	"flexnas/internal/metrics"
	"sync"
	"time"
)

// MinInterval is the minimum time between runs to prevent busy-looping.
const MinInterval = 1 * time.Second

// Task is one unit of periodic work. Run is bounded by the context it gets.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Service runs its tasks in the background on a fixed interval.
type Service struct {
	Interval time.Duration
	Timeout  time.Duration // per run, defaults to Interval
	Tasks    []Task

	timer    *time.Timer
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewService creates a new housekeeping service instance.
func NewService(interval time.Duration, tasks ...Task) *Service {
	if interval < MinInterval {
		interval = MinInterval
	}
	return &Service{
		Interval: interval,
		Tasks:    tasks,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start kicks off the background loop. The first run happens immediately.
func (s *Service) Start() {
	logging.Log.Infof("Starting background housekeeping service (interval %v).", s.Interval)
	s.timer = time.NewTimer(0)

	go func() {
		defer close(s.done)
		for {
			select {
			case <-s.timer.C:
				s.RunOnce()
				s.timer.Reset(s.Interval)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background loop and waits for a running pass to end.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		logging.Log.Info("Stopping background housekeeping service.")
		close(s.stopCh)
	})
	if s.timer != nil {
		<-s.done
	}
}

// RunOnce runs every task once. A failing task does not stop the others.
func (s *Service) RunOnce() {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = s.Interval
	}
	for _, task := range s.Tasks {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err := task.Run(ctx)
		cancel()
		if err != nil {
			logging.Log.Warnf("Housekeeping task '%s' failed: %v", task.Name, err)
			metrics.HousekeepingRuns.WithLabelValues(task.Name, "error").Inc()
			continue
		}
		logging.Log.Debugf("Housekeeping task '%s' finished.", task.Name)
		metrics.HousekeepingRuns.WithLabelValues(task.Name, "success").Inc()
	}
}
