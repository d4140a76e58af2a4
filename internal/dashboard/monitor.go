package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Checker probes the commerce API once.
type Checker interface {
	Check(ctx context.Context) error
}

// HTTPChecker treats any 2xx from URL as healthy.
type HTTPChecker struct {
	URL    string
	Client *http.Client
}

// NewHTTPChecker probes <apiURL>/health with a per-request timeout.
func NewHTTPChecker(apiURL string, timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		URL:    apiURL + "/health",
		Client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// HealthMonitor keeps a binary online/offline view of the API.
type HealthMonitor struct {
	checker  Checker
	interval time.Duration
	logger   *logrus.Logger
	now      func() time.Time

	mu          sync.RWMutex
	online      bool
	lastChecked time.Time
}

func NewHealthMonitor(checker Checker, interval time.Duration, logger *logrus.Logger) *HealthMonitor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &HealthMonitor{
		checker:  checker,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run checks immediately and then every interval until ctx is done.
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckNow(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckNow(ctx)
		}
	}
}

// CheckNow runs one probe and records the outcome.
func (m *HealthMonitor) CheckNow(ctx context.Context) bool {
	err := m.checker.Check(ctx)
	online := err == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.lastChecked = m.now()
	m.mu.Unlock()

	if changed {
		entry := m.logger.WithField("online", online)
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Info("API availability changed")
	}
	return online
}

// Online reports the result of the latest probe; false before the first one.
func (m *HealthMonitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// LastChecked is when the latest probe finished.
func (m *HealthMonitor) LastChecked() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastChecked
}
