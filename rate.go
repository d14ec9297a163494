package procrt

import (
	"context"
	"time"
)

// Rate is a drift-free periodic sleep handle - spec.md §3's "rate handle"
// and testable property S5. Repeated calls to Sleep advance nextDeadline by
// exactly period each time, regardless of how long the caller took between
// calls, so a process that periodically oversleeps (GC pause, a slow
// rendezvous) does not accumulate drift: it simply skips the deadlines it
// missed, rather than sleeping out of phase forever.
type Rate struct {
	period       time.Duration
	nextDeadline time.Time
}

func newRate(period time.Duration) *Rate {
	return &Rate{period: period, nextDeadline: timeNow().Add(period)}
}

// Sleep blocks the calling process until this Rate's next deadline, then
// advances the deadline by one period (catching up, without stacking
// backlog, if one or more periods were already missed).
func (b *Bridge) RateSleep(ctx context.Context, r *Rate) error {
	now := timeNow()
	d := r.nextDeadline.Sub(now)
	if d < 0 {
		// Missed one or more periods: resynchronize to the next deadline
		// still in the future instead of sleeping a large negative/zero
		// duration repeatedly.
		missed := (-d)/r.period + 1
		r.nextDeadline = r.nextDeadline.Add(missed * r.period)
		d = r.nextDeadline.Sub(now)
	} else {
		r.nextDeadline = r.nextDeadline.Add(r.period)
	}
	return b.Sleep(ctx, d)
}
