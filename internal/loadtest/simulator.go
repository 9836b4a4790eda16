package loadtest

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/transaction-server/internal/metrics"
)

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// spinSink keeps the busy loop's result observable so it is not optimised away.
var spinSink atomic.Uint64

const (
	defaultInterval = time.Second
	defaultBurst    = time.Second
)

// Usage is the figure pair reported to the dashboard. The values are random,
// not measurements.
type Usage struct {
	CPUUsage    float64
	MemoryUsage float64
}

// Simulator owns the on/off state of the synthetic CPU load. While Running a
// single burner goroutine spins the CPU for up to one burst every interval.
type Simulator struct {
	logger   *logrus.Logger
	interval time.Duration
	burst    time.Duration

	mu     sync.Mutex
	state  State
	closed bool
	stopCh chan struct{}
	wg     sync.WaitGroup

	bursts atomic.Int64
}

func NewSimulator(logger *logrus.Logger) *Simulator {
	return newSimulator(logger, defaultInterval, defaultBurst)
}

func newSimulator(logger *logrus.Logger, interval, burst time.Duration) *Simulator {
	return &Simulator{
		logger:   logger,
		interval: interval,
		burst:    burst,
		state:    Idle,
	}
}

// Start moves Idle to Running and launches the burner. It reports whether a
// transition happened; starting a running simulator is a no-op, and so is
// starting one whose Run has returned or is shutting down.
func (s *Simulator) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running || s.closed {
		return false
	}

	s.state = Running
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.burn(s.stopCh)

	metrics.LoadTestRunning.Set(1)
	s.logger.Info("LoadTest.Start")
	return true
}

// Stop moves Running to Idle. The burner returns at its next check.
func (s *Simulator) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Idle {
		return false
	}

	close(s.stopCh)
	s.state = Idle

	metrics.LoadTestRunning.Set(0)
	s.logger.WithField("bursts", s.bursts.Load()).Info("LoadTest.Stop")
	return true
}

// Run stops the simulator when ctx ends and waits for the burner to exit.
// Later Start calls are refused.
func (s *Simulator) Run(ctx context.Context) error {
	<-ctx.Done()

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.Stop()
	s.wg.Wait()
	return nil
}

func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Bursts returns how many burn bursts have completed since the process started.
func (s *Simulator) Bursts() int64 {
	return s.bursts.Load()
}

// Sample returns random usage figures in [0, 100).
func (s *Simulator) Sample() Usage {
	return Usage{
		CPUUsage:    rand.Float64() * 100,
		MemoryUsage: rand.Float64() * 100,
	}
}

func (s *Simulator) burn(stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.spin(stop) {
				return
			}
		}
	}
}

// spin busy-loops until the burst elapses. It returns false if stopped mid-burst.
func (s *Simulator) spin(stop <-chan struct{}) bool {
	deadline := time.Now().Add(s.burst)
	var sink uint64

	for time.Now().Before(deadline) {
		select {
		case <-stop:
			return false
		default:
		}
		for i := uint64(0); i < 100_000; i++ {
			sink += i ^ (sink >> 3)
		}
	}

	spinSink.Store(sink)
	s.bursts.Add(1)
	metrics.LoadTestBursts.Inc()
	return true
}
