package timing

import (
	"fmt"
	"time"
)

// SteadyRate maintains a steady cycle rate by sleeping whatever remains of
// the cycle period after work is done. Time spent between calls counts
// against the budget, so the average cadence converges on the target rate.
// A cycle that overruns its budget gets a zero-length sleep and the overrun
// is not compensated on later cycles.
//
// Usage:
//
//	rate, _ := timing.NewSteadyRate(60)
//	for running {
//		work()
//		rate.WaitForNextFrame()
//	}
type SteadyRate struct {
	period       time.Duration
	lastSleepEnd time.Time
}

// NewSteadyRate creates a limiter targeting rateHz cycles per second.
// The period is fixed for the lifetime of the limiter.
func NewSteadyRate(rateHz float64) (*SteadyRate, error) {
	if rateHz <= 0 {
		return nil, fmt.Errorf("timing: rate must be positive, got %v", rateHz)
	}

	return &SteadyRate{
		period:       time.Duration(float64(time.Second) / rateHz),
		lastSleepEnd: time.Now(),
	}, nil
}

// Period returns the fixed cycle period.
func (r *SteadyRate) Period() time.Duration {
	return r.period
}

// WaitForNextFrame sleeps for the remainder of the current cycle period.
// The internal timestamp advances on every call, slept or not.
func (r *SteadyRate) WaitForNextFrame() {
	elapsed := time.Since(r.lastSleepEnd)
	if remaining := r.period - elapsed; remaining > 0 {
		time.Sleep(remaining)
	}
	r.lastSleepEnd = time.Now()
}

// Reset restarts the cycle measurement from now.
func (r *SteadyRate) Reset() {
	r.lastSleepEnd = time.Now()
}

var _ Limiter = (*SteadyRate)(nil)
