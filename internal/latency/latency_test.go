package latency_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"loadlab/internal/latency"

	"github.com/stretchr/testify/assert"
)

func TestRandomSimulator_PicksWithinRange(t *testing.T) {
	r := latency.Range{Min: 50 * time.Millisecond, Max: 200 * time.Millisecond}
	sim := latency.NewRandomSimulator(map[string]latency.Range{"x": r}, latency.WithRand(rand.New(rand.NewPCG(1, 2))))

	for i := 0; i < 1000; i++ {
		d := sim.Pick("x")
		assert.GreaterOrEqual(t, d, r.Min)
		assert.LessOrEqual(t, d, r.Max)
	}
	assert.Zero(t, sim.Pick("unknown"))
}

func TestRandomSimulator_DelayUsesSleep(t *testing.T) {
	var slept time.Duration
	sim := latency.NewRandomSimulator(
		map[string]latency.Range{"fixed": {Min: 75 * time.Millisecond, Max: 75 * time.Millisecond}},
		latency.WithSleep(func(_ context.Context, d time.Duration) error {
			slept = d
			return nil
		}),
	)

	assert.NoError(t, sim.Delay(context.Background(), "fixed"))
	assert.Equal(t, 75*time.Millisecond, slept)
}

func TestRandomSimulator_DelayHonoursCancellation(t *testing.T) {
	sim := latency.NewRandomSimulator(map[string]latency.Range{"slow": {Min: time.Hour, Max: time.Hour}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sim.Delay(ctx, "slow")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDisabled(t *testing.T) {
	assert.NoError(t, latency.Disabled().Delay(context.Background(), latency.GetAnalytics))
}

func TestDefaultRangesCoverEveryEndpoint(t *testing.T) {
	for _, ep := range []string{
		latency.Register, latency.Login, latency.ListProducts, latency.GetProduct,
		latency.GetCart, latency.AddToCart, latency.CreateOrder, latency.ListOrders,
		latency.GetOrder, latency.GetAnalytics,
	} {
		r, ok := latency.DefaultRanges[ep]
		assert.True(t, ok, ep)
		assert.LessOrEqual(t, r.Min, r.Max, ep)
	}
}
