package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type settings struct {
	logger   *logrus.Logger
	now      func() time.Time
	tokenTTL time.Duration
	hashCost int
}

func defaultSettings() settings {
	return settings{
		logger:   logrus.StandardLogger(),
		now:      func() time.Time { return time.Now().UTC() },
		tokenTTL: 24 * time.Hour,
		hashCost: bcrypt.DefaultCost,
	}
}

// Option customises a service. Options a service does not use are ignored.
type Option func(*settings)

// WithLogger sets the logger services report through.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *settings) { s.tokenTTL = ttl }
}

// WithHashCost sets the bcrypt cost for new password hashes.
func WithHashCost(cost int) Option {
	return func(s *settings) { s.hashCost = cost }
}

func applyOptions(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
