// Package latency injects artificial processing delays into request handling.
// The delays only exist to make a load-test target look busy; they carry no meaning.
package latency

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Endpoint names used as keys for per-route ranges.
const (
	Register     = "auth.register"
	Login        = "auth.login"
	ListProducts = "products.list"
	GetProduct   = "products.get"
	GetCart      = "cart.get"
	AddToCart    = "cart.add"
	CreateOrder  = "orders.create"
	ListOrders   = "orders.list"
	GetOrder     = "orders.get"
	GetAnalytics = "analytics.get"
)

// Range is an inclusive delay window.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// DefaultRanges are the per-endpoint windows of the reference deployment.
var DefaultRanges = map[string]Range{
	Register:     {50 * time.Millisecond, 200 * time.Millisecond},
	Login:        {100 * time.Millisecond, 300 * time.Millisecond},
	ListProducts: {20 * time.Millisecond, 100 * time.Millisecond},
	GetProduct:   {30 * time.Millisecond, 150 * time.Millisecond},
	GetCart:      {50 * time.Millisecond, 200 * time.Millisecond},
	AddToCart:    {100 * time.Millisecond, 300 * time.Millisecond},
	CreateOrder:  {200 * time.Millisecond, 500 * time.Millisecond},
	ListOrders:   {100 * time.Millisecond, 300 * time.Millisecond},
	GetOrder:     {30 * time.Millisecond, 150 * time.Millisecond},
	GetAnalytics: {500 * time.Millisecond, 1500 * time.Millisecond},
}

// Simulator pauses a request for a while before it is handled.
type Simulator interface {
	// Delay blocks for the endpoint's simulated latency or until ctx is done.
	Delay(ctx context.Context, endpoint string) error
}

type disabled struct{}

func (disabled) Delay(context.Context, string) error { return nil }

// Disabled returns a Simulator that never waits.
func Disabled() Simulator { return disabled{} }

// RandomSimulator waits a uniformly random duration from the endpoint's Range.
type RandomSimulator struct {
	ranges map[string]Range
	sleep  func(ctx context.Context, d time.Duration) error

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a RandomSimulator.
type Option func(*RandomSimulator)

// WithRand makes the chosen durations reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *RandomSimulator) { s.rng = rng }
}

// WithSleep replaces the wait, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *RandomSimulator) { s.sleep = sleep }
}

// NewRandomSimulator builds a simulator from ranges; endpoints without a range don't wait.
func NewRandomSimulator(ranges map[string]Range, opts ...Option) *RandomSimulator {
	s := &RandomSimulator{
		ranges: ranges,
		sleep:  sleepContext,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pick returns the duration the endpoint would wait.
func (s *RandomSimulator) Pick(endpoint string) time.Duration {
	r, ok := s.ranges[endpoint]
	if !ok || r.Max <= 0 {
		return 0
	}
	if r.Max <= r.Min {
		return r.Min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.Min + time.Duration(s.rng.Int64N(int64(r.Max-r.Min)+1))
}

func (s *RandomSimulator) Delay(ctx context.Context, endpoint string) error {
	d := s.Pick(endpoint)
	if d <= 0 {
		return nil
	}
	return s.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
