package procrt

import (
	"context"
	"time"
)

// Bridge is the set of blocking runtime primitives available to a process
// while it runs - spec.md §6's "runtime API required by every process".
// Isolate implementations bind these methods to whatever calling
// convention their host language prefers (the isolate/goja subpackage
// exposes them as goja global functions). Runtime's own exported methods
// (Send, Receive, ...) are thin wrappers around a Bridge bound to the host
// sentinel process, so a Go caller and a running process share exactly one
// implementation of every primitive.
type Bridge struct {
	rt *Runtime
	p  *Process
}

// suspend reports kind on the process's yieldCh (handing control back to
// the worker that resumed it) and then blocks until the process is
// resumed, returning whatever values the waker staged. The host process
// never reports to a yieldCh - nothing is waiting on it - so it simply
// blocks on resumeCh directly, which is exactly what condition-variable
// style waiting would do.
func (b *Bridge) suspend(kind OutcomeKind) []Value {
	p := b.p
	if !p.isHost {
		p.yieldCh <- Outcome{Kind: kind}
	}
	<-p.resumeCh
	return p.args
}

// checkCtx returns ctx.Err() wrapped for reporting, or nil.
func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Send delivers vals to name, rendezvousing with a waiting receiver or
// parking the caller on the channel's send-queue until one arrives -
// spec.md §4.2's synchronous send.
func (b *Bridge) Send(ctx context.Context, name string, vals []Value) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if err := b.rt.checkPayload(len(vals)); err != nil {
		return err
	}
	ch, err := b.rt.registry.lookup(name)
	if err != nil {
		return err
	}
	return ch.send(b, CopyValues(vals))
}

// SendInvalid is called in place of Send when the caller's arguments
// themselves failed to convert into Values (e.g. an unsupported JS type).
// It still wakes a receiver already parked on name with err, so that side
// of the rendezvous isn't left blocked forever just because the sender's
// payload was malformed - spec.md §7's "delivers the diagnostic to both
// sides", original_source's luaproc_copyvalues. err is always returned to
// the caller, whether or not a receiver was waiting.
func (b *Bridge) SendInvalid(ctx context.Context, name string, err *UnsupportedValueError) error {
	if ctxErr := checkCtx(ctx); ctxErr != nil {
		return ctxErr
	}
	ch, lookupErr := b.rt.registry.lookup(name)
	if lookupErr != nil {
		return err
	}
	return ch.sendInvalid(err)
}

// Receive blocks until a value arrives on name, rendezvousing with a
// waiting sender or parking the caller on the channel's recv-queue -
// spec.md §4.2's synchronous receive. If async is true and no sender is
// currently waiting, it returns a *NoSendersWaitingError immediately
// instead of blocking.
func (b *Bridge) Receive(ctx context.Context, name string, async bool) ([]Value, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	ch, err := b.rt.registry.lookup(name)
	if err != nil {
		return nil, err
	}
	return ch.receive(b, async)
}

// Broadcast delivers vals to every process currently parked receiving on
// name, without blocking the caller - spec.md §4.2's broadcast. It returns
// the number of receivers the value was delivered to, or ErrNoReceivers if
// none were parked.
func (b *Bridge) Broadcast(ctx context.Context, name string, vals []Value) (int, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	if err := b.rt.checkPayload(len(vals)); err != nil {
		return 0, err
	}
	ch, err := b.rt.registry.lookup(name)
	if err != nil {
		return 0, err
	}
	return ch.broadcast(CopyValues(vals))
}

// BroadcastInvalid is the broadcast counterpart of SendInvalid: it notifies
// every receiver already parked on name with err before returning err to
// the caller.
func (b *Bridge) BroadcastInvalid(ctx context.Context, name string, err *UnsupportedValueError) error {
	if ctxErr := checkCtx(ctx); ctxErr != nil {
		return ctxErr
	}
	ch, lookupErr := b.rt.registry.lookup(name)
	if lookupErr != nil {
		return err
	}
	return ch.broadcastInvalid(err)
}

// NewChannel creates name if it doesn't already exist, returning
// *AlreadyExistsError if it does - spec.md §4.2.
func (b *Bridge) NewChannel(name string) error {
	return b.rt.registry.create(name)
}

// DelChannel destroys name, waking every process parked on it with a
// *DestroyedError - spec.md §4.2.
func (b *Bridge) DelChannel(name string) error {
	return b.rt.registry.destroy(name)
}

// IsOpen reports whether name currently exists.
func (b *Bridge) IsOpen(name string) bool {
	return b.rt.registry.isOpen(name)
}

// Sleep parks the calling process on the scheduler's timed list for at
// least d - spec.md §4.3.
func (b *Bridge) Sleep(ctx context.Context, d time.Duration) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	p := b.p
	if d <= 0 {
		return b.Yield(ctx)
	}
	p.wakeUp = time.Now().Add(d)
	p.status.Store(StatusBlockedSleep)
	b.rt.scheduler.parkTimed(p)
	b.suspend(OutcomeBlockedSleep)
	return p.err
}

// Yield gives up the calling process's turn without blocking on anything,
// letting the scheduler run other ready processes before resuming it -
// spec.md §4.1's bare cooperative yield. A no-op for the host process,
// which isn't scheduled.
func (b *Bridge) Yield(ctx context.Context) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if b.p.isHost {
		return nil
	}
	b.suspend(OutcomeYield)
	return b.p.err
}

// NewProc spawns a new process running body with args, returning its id -
// spec.md §4.3's newproc.
func (b *Bridge) NewProc(body Body, args []Value) (uint64, error) {
	return b.rt.spawn(body, args)
}

// SetNumWorkers resizes the worker pool - spec.md §4.1.
func (b *Bridge) SetNumWorkers(n int) error {
	return b.rt.scheduler.setNumWorkers(n)
}

// GetNumWorkers returns the current worker pool size.
func (b *Bridge) GetNumWorkers() int {
	return b.rt.scheduler.getNumWorkers()
}

// Recycle sets the recycle pool's capacity, immediately trimming any
// surplus already-recycled processes - spec.md §4.3, supplemented per
// original_source's lpsched.c recycle behavior (see SPEC_FULL.md).
func (b *Bridge) Recycle(n int) {
	b.rt.recyclePool.setLimit(n)
}

// Wait blocks until every non-host process has finished, or ctx is
// cancelled - spec.md §4.1's quiescence wait.
func (b *Bridge) Wait(ctx context.Context) error {
	return b.rt.scheduler.wait(ctx)
}

// Period installs a drift-free repeating wakeup on the calling process,
// returning a *Rate handle - spec.md §4.3's periodic sleep. d must be
// positive; a zero or negative period has no meaningful next deadline.
func (b *Bridge) Period(d time.Duration) (*Rate, error) {
	if d <= 0 {
		return nil, &InvalidArgumentError{Message: "period must be positive"}
	}
	return newRate(d), nil
}
