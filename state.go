package procrt

import "sync/atomic"

// ProcessStatus mirrors spec.md §3's process status enum. Following
// eventloop/state.go's FastState, it is backed by an atomic so the
// scheduler and a process's own execution goroutine can observe it without
// a mutex on the hot path.
type ProcessStatus uint32

const (
	// StatusIdle is the state of a freshly recycled or newly allocated
	// process record, before it has been placed on the ready-queue.
	StatusIdle ProcessStatus = iota
	// StatusReady means the process is sitting on the scheduler's ready-queue.
	StatusReady
	// StatusRunning means a worker is currently resuming the process.
	StatusRunning
	// StatusBlockedSend means the process is parked on a channel's send-queue.
	StatusBlockedSend
	// StatusBlockedRecv means the process is parked on a channel's recv-queue.
	StatusBlockedRecv
	// StatusBlockedSleep means the process is parked on the timed-sleep list.
	StatusBlockedSleep
	// StatusFinished means the process completed (cleanly or with an error)
	// and is eligible for recycling.
	StatusFinished
)

func (s ProcessStatus) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusReady:
		return "Ready"
	case StatusRunning:
		return "Running"
	case StatusBlockedSend:
		return "BlockedSend"
	case StatusBlockedRecv:
		return "BlockedRecv"
	case StatusBlockedSleep:
		return "BlockedSleep"
	case StatusFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// fastStatus is a lock-free holder for ProcessStatus, directly modeled on
// eventloop/state.go's FastState.
type fastStatus struct {
	v atomic.Uint32
}

func (s *fastStatus) Load() ProcessStatus { return ProcessStatus(s.v.Load()) }

func (s *fastStatus) Store(v ProcessStatus) { s.v.Store(uint32(v)) }

func (s *fastStatus) CompareAndSwap(from, to ProcessStatus) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
