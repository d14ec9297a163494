package procrt

import (
	"errors"
	"fmt"
)

// Standard sentinel errors, in the style of eventloop's ErrLoop* values.
var (
	// ErrRuntimeClosed is returned when an operation is attempted on a
	// Runtime that has already been shut down.
	ErrRuntimeClosed = errors.New("procrt: runtime has been closed")

	// ErrNoSendersWaiting is the sentinel an async Receive's error is always
	// errors.Is-comparable against; the actual error returned is always a
	// *NoSendersWaitingError carrying the channel name (spec.md §8 S4).
	ErrNoSendersWaiting = errors.New("procrt: no senders waiting on channel")

	// ErrNoReceivers is returned by Broadcast when no process is currently
	// parked receiving on the channel - spec.md §4.2's "no one receive".
	ErrNoReceivers = errors.New("procrt: no one receive")
)

// NotFoundError is returned when a channel operation names a channel that
// does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("procrt: channel %q does not exist", e.Name)
}

// NoSendersWaitingError is returned by an async Receive when no sender is
// currently parked on Name - spec.md §8 S4's "no senders waiting on
// channel 'c'", original_source's luaproc.c:822. Is reports true against
// ErrNoSendersWaiting so existing errors.Is/require.ErrorIs callers keep
// working without caring about the channel name.
type NoSendersWaitingError struct {
	Name string
}

func (e *NoSendersWaitingError) Error() string {
	return fmt.Sprintf("procrt: no senders waiting on channel %q", e.Name)
}

func (e *NoSendersWaitingError) Is(target error) bool {
	return target == ErrNoSendersWaiting
}

// AlreadyExistsError is returned by NewChannel when the name is already
// registered.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("procrt: channel %q already exists", e.Name)
}

// DestroyedError is delivered to every process parked on a channel at the
// moment it is destroyed.
type DestroyedError struct {
	Name string
	Op   string // "sender" or "receiver"
}

func (e *DestroyedError) Error() string {
	return fmt.Sprintf("procrt: channel %q destroyed while waiting for %s", e.Name, e.Op)
}

// UnsupportedValueError is returned when a value copy is attempted on a
// value outside the supported primitive set (nil, bool, integer, float,
// byte string). Index is the 0-based position of the offending value
// within the send/broadcast argument list; for Broadcast, ReceiverIndex
// additionally records which parked receiver the copy failed against (see
// spec.md §9, open question (b)).
type UnsupportedValueError struct {
	Type          string
	Index         int
	ReceiverIndex int
}

func (e *UnsupportedValueError) Error() string {
	if e.ReceiverIndex >= 0 {
		return fmt.Sprintf("procrt: failed to copy value %d (receiver %d): unsupported type %q", e.Index, e.ReceiverIndex, e.Type)
	}
	return fmt.Sprintf("procrt: failed to copy value %d: unsupported type %q", e.Index, e.Type)
}

// StackFullError is returned when a destination isolate cannot accept the
// size of a pending payload.
type StackFullError struct {
	Requested int
	Capacity  int
}

func (e *StackFullError) Error() string {
	return fmt.Sprintf("procrt: destination stack full: requested %d, capacity %d", e.Requested, e.Capacity)
}

// InvalidArgumentError wraps a bad caller-supplied argument (non-positive
// worker count, non-positive period, empty channel name, wrong type, etc).
type InvalidArgumentError struct {
	Message string
	Cause   error
}

func (e *InvalidArgumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("procrt: invalid argument: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("procrt: invalid argument: %s", e.Message)
}

func (e *InvalidArgumentError) Unwrap() error { return e.Cause }

// LoadFailureError is returned by NewProc when the supplied body fails to
// compile/load into a fresh isolate.
type LoadFailureError struct {
	Cause error
}

func (e *LoadFailureError) Error() string {
	return fmt.Sprintf("procrt: body failed to load: %v", e.Cause)
}

func (e *LoadFailureError) Unwrap() error { return e.Cause }

// WorkerSpawnFailureError is returned by SetNumWorkers (or initial pool
// construction) when a worker goroutine could not be started. Goroutines
// virtually never fail to start, but the hook exists for isolate
// implementations that, e.g., must secure some host resource (a native
// thread, a syscall FD) when bringing up a worker.
type WorkerSpawnFailureError struct {
	Cause error
}

func (e *WorkerSpawnFailureError) Error() string {
	return fmt.Sprintf("procrt: failed to start worker: %v", e.Cause)
}

func (e *WorkerSpawnFailureError) Unwrap() error { return e.Cause }
