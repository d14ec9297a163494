package procrt

import "time"

// timeNow is swapped out in tests, following catrate/limiter.go's own
// timeNow/timeNewTicker package vars - the teacher pack's established way
// of making time-dependent behavior (here, drift-free periodic sleep)
// deterministically testable without real sleeps.
var timeNow = time.Now
