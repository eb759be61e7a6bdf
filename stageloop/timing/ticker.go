package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent cycle timing.
// Less accurate than SteadyRate when cycles overrun, but good enough for
// callers that only need a coarse cadence.
type TickerLimiter struct {
	period time.Duration
	ticker *time.Ticker
	ch     <-chan time.Time
}

func NewTickerLimiter(period time.Duration) *TickerLimiter {
	ticker := time.NewTicker(period)
	return &TickerLimiter{
		period: period,
		ticker: ticker,
		ch:     ticker.C,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}

var _ Limiter = (*TickerLimiter)(nil)
