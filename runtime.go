package procrt

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Runtime is a complete concurrent process runtime - spec.md §6's public
// surface. It owns a fixed (resizable) pool of worker goroutines, a named
// channel registry, a bounded recycle pool of reusable process records,
// and a single host sentinel process representing the embedding
// goroutine's own participation in channel rendezvous.
type Runtime struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg *config

	registry    *registry
	scheduler   *scheduler
	recyclePool *recyclePool
	logger      Logger

	host *Process

	nextID      atomic.Uint64
	closeOnce   sync.Once
	closed      atomic.Bool
}

// New constructs a Runtime per opts. WithIsolateFactory is required; New
// returns an error if none was supplied.
func New(opts ...Option) (*Runtime, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.isolateFactory == nil {
		return nil, &InvalidArgumentError{Message: "procrt: WithIsolateFactory is required"}
	}

	rt := &Runtime{cfg: cfg, logger: cfg.logger}
	rt.ctx, rt.cancel = context.WithCancel(context.Background())
	rt.registry = newRegistry(rt)
	rt.scheduler = newScheduler(rt)
	rt.recyclePool = newRecyclePool(cfg.recycleLimit)

	rt.host = newProcess(0, rt, nil)
	rt.host.isHost = true
	rt.host.started = true
	rt.host.status.Store(StatusRunning)

	rt.scheduler.start(cfg.numWorkers)
	return rt, nil
}

// wake delivers a process's next resumption: a direct synchronous signal
// for the host sentinel, or a ready-queue enqueue (for a worker to pick up)
// for every other process - spec.md §9's branch on "is the process the
// host".
func (rt *Runtime) wake(p *Process) {
	if p.isHost {
		p.resumeCh <- struct{}{}
		return
	}
	rt.scheduler.enqueueReady(p)
}

// spawn implements Bridge.NewProc / the public NewProc: it takes a process
// record from the recycle pool if one is available, otherwise builds a
// fresh one via the configured IsolateFactory, loads body into it, and
// places it on the ready-queue - spec.md §4.3's newproc.
func (rt *Runtime) spawn(body Body, args []Value) (uint64, error) {
	if rt.closed.Load() {
		return 0, ErrRuntimeClosed
	}
	if err := rt.checkPayload(len(args)); err != nil {
		return 0, err
	}
	if rt.cfg.spawnLimiter != nil {
		if _, ok := rt.cfg.spawnLimiter.Allow("newproc"); !ok {
			return 0, &InvalidArgumentError{Message: "procrt: spawn rate limit exceeded"}
		}
	}

	p := rt.recyclePool.take()
	if p != nil {
		if err := p.isolate.Reset(); err != nil {
			// A recycled isolate that fails to reset is unusable; fall
			// through and allocate a fresh one instead of propagating a
			// surprising error out of an ordinary newproc call.
			_ = p.isolate.Close()
			p = nil
		}
	}
	if p == nil {
		isolate, err := rt.cfg.isolateFactory(rt)
		if err != nil {
			return 0, &WorkerSpawnFailureError{Cause: err}
		}
		p = newProcess(rt.nextID.Add(1), rt, isolate)
	} else {
		p.id = rt.nextID.Add(1)
		p.reset()
	}

	if err := p.isolate.LoadBody(body, args); err != nil {
		rt.logger.Errorf("procrt: process %d failed to load body: %v", p.id, err)
		// The record never entered the scheduler; hand it back to the
		// recycle pool (which closes the isolate if the pool is full or
		// recycling is disabled) rather than leaking it.
		rt.recyclePool.offer(p)
		return 0, err
	}

	rt.scheduler.addActive()
	rt.scheduler.enqueueReady(p)
	rt.logger.Debugf("procrt: spawned process %d (recycled=%v)", p.id, p.recycled > 0)
	return p.id, nil
}

// checkPayload enforces the configured per-message value cap, if any -
// the bound on what a destination isolate's stack must be able to accept.
func (rt *Runtime) checkPayload(n int) error {
	if limit := rt.cfg.maxMessageValues; limit > 0 && n > limit {
		return &StackFullError{Requested: n, Capacity: limit}
	}
	return nil
}

// onProcessFinished returns a finished process's record to the recycle
// pool and updates quiescence bookkeeping.
func (rt *Runtime) onProcessFinished(p *Process) {
	rt.scheduler.removeActive()
	rt.recyclePool.offer(p)
}

// --- Host-facing public API: thin wrappers around a Bridge bound to the
// host sentinel process, so the embedding goroutine and a running process
// share one implementation of every primitive. ---

func (rt *Runtime) hostBridge() *Bridge { return &Bridge{rt: rt, p: rt.host} }

// NewProc spawns a new process running body with args, returning its id.
func (rt *Runtime) NewProc(body Body, args []Value) (uint64, error) {
	return rt.spawn(body, args)
}

// Send delivers vals to the named channel, blocking the calling goroutine
// until a receiver rendezvouses (or the channel is destroyed).
func (rt *Runtime) Send(ctx context.Context, name string, vals ...Value) error {
	return rt.hostBridge().Send(ctx, name, vals)
}

// Receive blocks until a value arrives on the named channel.
func (rt *Runtime) Receive(ctx context.Context, name string) ([]Value, error) {
	return rt.hostBridge().Receive(ctx, name, false)
}

// ReceiveAsync returns immediately with ErrNoSendersWaiting if no sender
// is currently parked on the named channel, instead of blocking.
func (rt *Runtime) ReceiveAsync(ctx context.Context, name string) ([]Value, error) {
	return rt.hostBridge().Receive(ctx, name, true)
}

// Broadcast delivers vals to every process currently waiting to receive on
// name, without blocking, and returns how many received it.
func (rt *Runtime) Broadcast(ctx context.Context, name string, vals ...Value) (int, error) {
	return rt.hostBridge().Broadcast(ctx, name, vals)
}

// NewChannel creates the named channel, failing if it already exists.
func (rt *Runtime) NewChannel(name string) error { return rt.registry.create(name) }

// DelChannel destroys the named channel, waking every waiter with an error.
func (rt *Runtime) DelChannel(name string) error { return rt.registry.destroy(name) }

// IsOpen reports whether the named channel currently exists.
func (rt *Runtime) IsOpen(name string) bool { return rt.registry.isOpen(name) }

// SetNumWorkers resizes the worker pool.
func (rt *Runtime) SetNumWorkers(n int) error { return rt.scheduler.setNumWorkers(n) }

// GetNumWorkers returns the current worker pool size.
func (rt *Runtime) GetNumWorkers() int { return rt.scheduler.getNumWorkers() }

// Recycle sets the recycle pool's capacity.
func (rt *Runtime) Recycle(n int) { rt.recyclePool.setLimit(n) }

// Sleep blocks the calling goroutine for at least d. Since the host isn't
// scheduled, this just blocks the real calling goroutine for d - the host
// equivalent of a process parking on the timed list.
func (rt *Runtime) Sleep(ctx context.Context, d time.Duration) error {
	return rt.hostBridge().Sleep(ctx, d)
}

// Period returns a drift-free periodic Rate handle for the calling
// goroutine to sleep against repeatedly via RateSleep. d must be positive.
func (rt *Runtime) Period(d time.Duration) (*Rate, error) { return rt.hostBridge().Period(d) }

// RateSleep blocks the calling goroutine until r's next deadline, then
// advances r by one period - the host equivalent of a process calling
// sleep(rate).
func (rt *Runtime) RateSleep(ctx context.Context, r *Rate) error {
	return rt.hostBridge().RateSleep(ctx, r)
}

// Wait blocks until every non-host process has finished, or ctx is
// cancelled.
func (rt *Runtime) Wait(ctx context.Context) error { return rt.scheduler.wait(ctx) }

// Close shuts the runtime down: it stops accepting new processes, tears
// down every channel (waking any waiter with an error), and joins the
// worker pool. Close is idempotent.
func (rt *Runtime) Close() error {
	rt.closeOnce.Do(func() {
		rt.logger.Infof("procrt: runtime closing")
		rt.closed.Store(true)
		rt.cancel()

		rt.registry.mu.Lock()
		names := make([]string, 0, len(rt.registry.channels))
		for name := range rt.registry.channels {
			names = append(names, name)
		}
		rt.registry.mu.Unlock()
		for _, name := range names {
			_ = rt.registry.destroy(name)
		}

		rt.scheduler.shutdown()

		for _, p := range rt.recyclePool.drainAll() {
			_ = p.isolate.Close()
		}
	})
	return nil
}
