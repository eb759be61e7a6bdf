package timing_test

import (
	"testing"
	"time"

	"github.com/mvaleri/go-stageloop/stageloop/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSteadyRate(t *testing.T) {
	t.Run("positive rate", func(t *testing.T) {
		rate, err := timing.NewSteadyRate(60)
		require.NoError(t, err)
		assert.Equal(t, time.Second/60, rate.Period())
	})

	t.Run("zero rate rejected", func(t *testing.T) {
		_, err := timing.NewSteadyRate(0)
		assert.Error(t, err)
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		_, err := timing.NewSteadyRate(-30)
		assert.Error(t, err)
	})
}

func TestSteadyRateCadence(t *testing.T) {
	rate, err := timing.NewSteadyRate(100) // 10ms period
	require.NoError(t, err)

	const cycles = 20
	start := time.Now()
	for i := 0; i < cycles; i++ {
		rate.WaitForNextFrame()
	}
	elapsed := time.Since(start)

	mean := elapsed / cycles
	assert.InDelta(t, float64(rate.Period()), float64(mean), float64(5*time.Millisecond),
		"mean cadence should converge to the period within scheduler jitter")
}

func TestSteadyRateOverrun(t *testing.T) {
	rate, err := timing.NewSteadyRate(100) // 10ms period
	require.NoError(t, err)

	// Work that blows the whole cycle budget yields a zero-length sleep.
	time.Sleep(3 * rate.Period())

	start := time.Now()
	rate.WaitForNextFrame()
	assert.Less(t, time.Since(start), rate.Period(), "overrun cycle should not sleep")

	// The overrun is not compensated: the next idle cycle sleeps a full period.
	start = time.Now()
	rate.WaitForNextFrame()
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, rate.Period()-2*time.Millisecond)
}

func TestSteadyRateReset(t *testing.T) {
	rate, err := timing.NewSteadyRate(100)
	require.NoError(t, err)

	time.Sleep(3 * rate.Period())
	rate.Reset()

	// After a reset the elapsed time is measured from now again.
	start := time.Now()
	rate.WaitForNextFrame()
	assert.GreaterOrEqual(t, time.Since(start), rate.Period()-2*time.Millisecond)
}

func TestNoOpLimiter(t *testing.T) {
	limiter := timing.NewNoOpLimiter()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		limiter.WaitForNextFrame()
	}
	limiter.Reset()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestTickerLimiter(t *testing.T) {
	limiter := timing.NewTickerLimiter(5 * time.Millisecond)
	defer limiter.Stop()

	start := time.Now()
	limiter.WaitForNextFrame()
	limiter.WaitForNextFrame()
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}
