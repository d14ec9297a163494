package procrt

import (
	"testing"
	"time"
)

func TestNewRateInitialDeadline(t *testing.T) {
	restore := timeNow
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = restore }()

	r := newRate(10 * time.Millisecond)
	if want := fixed.Add(10 * time.Millisecond); !r.nextDeadline.Equal(want) {
		t.Fatalf("nextDeadline = %v, want %v", r.nextDeadline, want)
	}
	if r.period != 10*time.Millisecond {
		t.Fatalf("period = %v, want 10ms", r.period)
	}
}
