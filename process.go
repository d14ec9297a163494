package procrt

import "time"

// waitSide records which queue of a Channel a blocked process belongs to,
// so Destroy and diagnostics can tell send-side waiters from recv-side
// waiters without re-deriving it from status alone.
type waitSide uint8

const (
	waitNone waitSide = iota
	waitSend
	waitRecv
)

// Process is a single lightweight concurrent process, spec.md §3's core
// unit of scheduling. Its lifecycle runs on a single dedicated goroutine
// (started lazily on first resume) that blocks on resumeCh between
// suspensions and reports every suspension or termination on yieldCh - the
// two-channel handoff spec.md §9 calls for when the host language has no
// stackful coroutine to rely on.
type Process struct {
	id      uint64
	rt      *Runtime
	isolate Isolate

	// isHost marks the single sentinel Process representing the embedding
	// goroutine's own participation in channel rendezvous (spec.md §9,
	// "host as process"). A host process is never scheduled onto the
	// ready-queue or run on a worker; it blocks synchronously on its own
	// resumeCh.
	isHost bool

	status  fastStatus
	started bool

	// next links Process into exactly one of: the scheduler ready-queue,
	// a channel's send-queue, or a channel's recv-queue - spec.md §3's
	// one-list-at-a-time invariant.
	next *Process

	// heapIdx is this Process's index in the scheduler's timed min-heap,
	// or -1 when not a member.
	heapIdx int
	wakeUp  time.Time

	waitChannel *Channel
	waitSide    waitSide

	// resumeCh is signalled by whoever delivers this process's next
	// resumption (a worker picking it off the ready-queue, or a directly
	// signalled wake for a parked channel/sleep wait). Buffered by one so
	// the waker never blocks on a process that raced to finish.
	resumeCh chan struct{}

	// yieldCh carries the outcome of the current resumption back to
	// whichever worker (or runProcess goroutine, on first start) is
	// waiting on this process. Unbuffered: the handoff is synchronous by
	// design, so a worker never believes a process is still running after
	// it has in fact suspended or finished.
	yieldCh chan Outcome

	// args carries the value payload across a suspension point in either
	// direction: outgoing values staged by a blocked Send waiting to be
	// copied out by a matching Receive, or incoming values delivered by a
	// waker just before resumeCh is signalled.
	args []Value

	// err is set by whoever wakes a blocked process, and is what that
	// process's blocking call returns once resumed (nil on ordinary
	// rendezvous, a *DestroyedError on channel teardown, etc).
	err error

	recycled int // number of times this Process record has been reused
}

func newProcess(id uint64, rt *Runtime, isolate Isolate) *Process {
	return &Process{
		id:       id,
		rt:       rt,
		isolate:  isolate,
		heapIdx:  -1,
		resumeCh: make(chan struct{}, 1),
		yieldCh:  make(chan Outcome),
	}
}

// reset restores a finished Process record to a clean slate for the recycle
// pool (spec.md §4.3's recycling). The isolate itself is reset separately by
// the caller so a failed Isolate.Reset can abort recycling before this is
// called.
func (p *Process) reset() {
	p.started = false
	p.next = nil
	p.heapIdx = -1
	p.wakeUp = time.Time{}
	p.waitChannel = nil
	p.waitSide = waitNone
	p.args = nil
	p.err = nil
	p.status.Store(StatusIdle)
	p.recycled++
	// resumeCh/yieldCh are reused as-is: runProcess always starts a fresh
	// goroutine for a recycled Process, and the channels are already
	// drained by construction (a finished process never has a pending
	// send on either).
}

// runProcess drives a Process's entire body on a dedicated goroutine, from
// the first resumption through to a terminal Outcome. It never returns in
// between suspensions - blocking primitives invoked through the process's
// Bridge suspend this same goroutine internally (see bridge.go's suspend).
func (rt *Runtime) runProcess(p *Process) {
	err := p.isolate.Execute(rt.ctx, &Bridge{rt: rt, p: p})
	kind := OutcomeFinished
	if err != nil {
		kind = OutcomeError
	}
	p.yieldCh <- Outcome{Kind: kind, Err: err}
}
