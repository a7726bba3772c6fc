package governance

import (
	"time"
)

// IntervalClock derives ticks from wall time: one tick per interval since
// origin. At the default 2s interval the 150-tick timelock is five minutes,
// matching the host engine's native time granularity.
type IntervalClock struct {
	origin   time.Time
	interval time.Duration
}

// NewIntervalClock returns a clock ticking once per interval. A
// non-positive interval selects 2 seconds.
func NewIntervalClock(origin time.Time, interval time.Duration) *IntervalClock {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &IntervalClock{origin: origin, interval: interval}
}

// Now implements Clock.
func (c *IntervalClock) Now() uint64 {
	elapsed := time.Since(c.origin)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.interval)
}

var _ Clock = (*IntervalClock)(nil)
