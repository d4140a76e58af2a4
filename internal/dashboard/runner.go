package dashboard

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Test statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// TestNames are the tests the dashboard offers, in display order.
var TestNames = []string{"Load Test", "Stress Test", "Spike Test", "Endurance Test"}

var (
	ErrUnknownTest   = errors.New("unknown test")
	ErrServerOffline = errors.New("server is offline")
	ErrTestRunning   = errors.New("test is already running")
	ErrRunnerClosed  = errors.New("runner is closed")
)

// TestMetrics are the fabricated results of a completed run.
type TestMetrics struct {
	Duration        int `json:"duration"` // seconds
	Requests        int `json:"requests"`
	Errors          int `json:"errors"`
	AvgResponseTime int `json:"avgResponseTime"` // milliseconds
	Throughput      int `json:"throughput"`      // requests per second
}

// TestResult is one row of the test suite. Metrics are present once a run completed.
type TestResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	*TestMetrics
}

// Runner fakes test executions: a run completes after a random delay with random metrics.
type Runner struct {
	online func() bool
	delay  func() time.Duration
	logger *logrus.Logger

	mu      sync.Mutex
	rng     *rand.Rand
	tests   []TestResult
	current string
	closed  bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDelayRange draws each run's length uniformly from [lo, hi).
func WithDelayRange(lo, hi time.Duration) RunnerOption {
	return func(r *Runner) {
		r.delay = func() time.Duration {
			if hi <= lo {
				return lo
			}
			r.mu.Lock()
			defer r.mu.Unlock()
			return lo + time.Duration(r.rng.Int64N(int64(hi-lo)))
		}
	}
}

// WithDelay fixes how long every run takes.
func WithDelay(d time.Duration) RunnerOption {
	return func(r *Runner) { r.delay = func() time.Duration { return d } }
}

func WithSeed(seed uint64) RunnerOption {
	return func(r *Runner) { r.rng = rand.New(rand.NewPCG(seed, seed)) }
}

func WithRunnerLogger(logger *logrus.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a runner with every test pending. online gates new runs.
func NewRunner(online func() bool, opts ...RunnerOption) *Runner {
	now := uint64(time.Now().UnixNano())
	r := &Runner{
		online: online,
		logger: logrus.StandardLogger(),
		rng:    rand.New(rand.NewPCG(now, now>>3)),
		stop:   make(chan struct{}),
	}
	for _, name := range TestNames {
		r.tests = append(r.tests, TestResult{Name: name, Status: StatusPending})
	}
	WithDelayRange(3*time.Second, 8*time.Second)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the named test. It returns immediately; the result appears later in Tests.
func (r *Runner) Run(name string) error {
	d := r.delay()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRunnerClosed
	}
	idx := r.index(name)
	if idx < 0 {
		return ErrUnknownTest
	}
	if !r.online() {
		return ErrServerOffline
	}
	if r.tests[idx].Status == StatusRunning {
		return ErrTestRunning
	}

	r.tests[idx] = TestResult{Name: name, Status: StatusRunning}
	r.current = name
	r.logger.WithFields(logrus.Fields{"test": name, "delay": d}).Info("simulated test started")

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			r.complete(idx)
		case <-r.stop:
		}
	}()
	return nil
}

func (r *Runner) complete(idx int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := &TestMetrics{
		Duration:        60 + r.rng.IntN(300),
		Requests:        1000 + r.rng.IntN(10000),
		Errors:          r.rng.IntN(50),
		AvgResponseTime: 50 + r.rng.IntN(500),
		Throughput:      100 + r.rng.IntN(500),
	}
	name := r.tests[idx].Name
	r.tests[idx] = TestResult{Name: name, Status: StatusCompleted, TestMetrics: m}
	if r.current == name {
		r.current = ""
	}
	r.logger.WithField("test", name).Info("simulated test completed")
}

func (r *Runner) index(name string) int {
	for i := range r.tests {
		if r.tests[i].Name == name {
			return i
		}
	}
	return -1
}

// Tests returns a snapshot of every test in display order.
func (r *Runner) Tests() []TestResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TestResult, len(r.tests))
	for i, t := range r.tests {
		if t.TestMetrics != nil {
			m := *t.TestMetrics
			t.TestMetrics = &m
		}
		out[i] = t
	}
	return out
}

// Current is the most recently started test that is still running, or "".
func (r *Runner) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Close abandons in-flight runs and waits for their goroutines.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.stop)
	r.mu.Unlock()
	r.wg.Wait()
}
