package procrt

import (
	catrate "github.com/joeycumines/go-catrate"
)

// Option configures a Runtime at construction, following the functional
// options pattern from eventloop/options.go's LoopOption.
type Option func(*config)

type config struct {
	numWorkers       int
	recycleLimit     int
	maxMessageValues int
	logger           Logger
	isolateFactory   IsolateFactory
	spawnLimiter     *catrate.Limiter
}

func defaultConfig() *config {
	return &config{
		numWorkers:   1,
		recycleLimit: 0,
		logger:       nopLogger{},
	}
}

// WithNumWorkers sets the initial worker pool size (floored at 1, matching
// original_source/src/lpsched.c's own minimum of one scheduler thread).
func WithNumWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.numWorkers = n
	}
}

// WithRecycleLimit sets the initial recycle pool capacity - spec.md §4.3.
func WithRecycleLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.recycleLimit = n
	}
}

// WithMaxMessageValues caps how many values a single send, broadcast, or
// newproc argument list may carry; payloads over the cap fail with a
// *StackFullError, the bound a destination isolate's value stack would
// otherwise hit. Zero (the default) means unlimited.
func WithMaxMessageValues(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.maxMessageValues = n
	}
}

// WithLogger installs a Logger, replacing the no-op default.
func WithLogger(l Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIsolateFactory installs the constructor used for every fresh
// process's Isolate. Required: a Runtime with no isolate factory can't
// spawn any process.
func WithIsolateFactory(f IsolateFactory) Option {
	return func(c *config) { c.isolateFactory = f }
}

// WithSpawnRateLimit caps how quickly newproc may mint new processes,
// using github.com/joeycumines/go-catrate's sliding-window limiter -
// SPEC_FULL.md's domain-stack wiring for bursty spawn storms. A nil
// limiter (the default) disables rate limiting entirely.
func WithSpawnRateLimit(limiter *catrate.Limiter) Option {
	return func(c *config) { c.spawnLimiter = limiter }
}
