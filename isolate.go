package procrt

import "context"

// Body is the loadable unit of code a process executes, per spec.md §4.3:
// either pre-dumped bytes or something a concrete Isolate implementation
// knows how to compile directly from source. The zero value of Body (empty
// Source, nil Dumped) is invalid.
type Body struct {
	// Source is script source text. Mutually exclusive with Dumped.
	Source string
	// Dumped is a previously-dumped (compiled) body, as produced by an
	// Isolate's Dump method - the equivalent of Lua's string.dump for a
	// callable being passed to newproc.
	Dumped any
}

// Outcome is what a process's execution goroutine reports back to the
// worker that resumed it, corresponding to spec.md §4.1's "Resume outcomes".
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// OutcomeKind enumerates the ways Isolate.Execute may suspend or finish.
type OutcomeKind uint8

const (
	// OutcomeFinished indicates clean completion.
	OutcomeFinished OutcomeKind = iota
	// OutcomeBlockedSend indicates the process parked on a channel send-queue.
	OutcomeBlockedSend
	// OutcomeBlockedRecv indicates the process parked on a channel recv-queue.
	OutcomeBlockedRecv
	// OutcomeBlockedSleep indicates the process parked on the timed-sleep list.
	OutcomeBlockedSleep
	// OutcomeYield indicates a bare cooperative yield.
	OutcomeYield
	// OutcomeError indicates the body raised an error or panicked.
	OutcomeError
)

// Isolate is the abstract execution context required by a process -
// spec.md §6's "Isolate capability required from host language". It owns a
// private execution context, a value stack (represented here as the
// pending argument/result values passed through Bridge), and a dump/load
// mechanism for function bodies. The isolate/goja subpackage provides a
// concrete implementation backed by github.com/dop251/goja.
//
// Neither Isolate nor Bridge is safe for concurrent use: a process's
// Execute call and any Bridge methods it invokes always run on the single
// goroutine dedicated to that process (see process.go).
type Isolate interface {
	// LoadBody compiles/installs body as the process's entry point. args are
	// the values already copied in by newproc (or, for a recycled process,
	// the up-values and arguments of the new callable). Returns a
	// *LoadFailureError on failure.
	LoadBody(body Body, args []Value) error

	// Execute runs the loaded body on the calling goroutine to true
	// completion (or a fatal error/panic), using bridge for any runtime
	// primitive the body invokes (send/receive/sleep/newproc/...). Every
	// suspension point (send/receive/sleep/yield that must block) is
	// handled internally by the bridge methods, which hand control back to
	// the scheduler and block the calling goroutine until the process is
	// resumed - Execute itself only returns once, at process end.
	Execute(ctx context.Context, bridge *Bridge) error

	// Reset clears per-run state (globals, stacks) so the isolate can be
	// handed to a new body by the recycle pool. Standard library bindings
	// and the runtime API self-pointer survive a Reset.
	Reset() error

	// Close releases the isolate permanently.
	Close() error

	// Dump serializes a callable value (as opposed to source text) into a
	// Body.Dumped payload suitable for a later LoadBody, mirroring Lua's
	// string.dump. Implementations that have no native notion of a
	// standalone callable value may return the value unchanged.
	Dump(callable any) (any, error)
}

// IsolateFactory constructs a fresh Isolate bound to rt, for use by the
// recycle pool and by newproc when the pool is empty.
type IsolateFactory func(rt *Runtime) (Isolate, error)
