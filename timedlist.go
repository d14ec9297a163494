package procrt

import (
	"container/heap"
	"time"
)

// timedList is the deadline-ordered list of sleeping processes from
// spec.md §3 ("Timed list"). It is a min-heap keyed on Process.wakeUp,
// directly modeled on eventloop/loop.go's timerHeap - the teacher's own
// use of container/heap for its timer wheel.
type timedList struct {
	items timedHeap
}

type timedHeap []*Process

func (h timedHeap) Len() int            { return len(h) }
func (h timedHeap) Less(i, j int) bool  { return h[i].wakeUp.Before(h[j].wakeUp) }
func (h timedHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].heapIdx = i; h[j].heapIdx = j }
func (h *timedHeap) Push(x any) {
	p := x.(*Process)
	p.heapIdx = len(*h)
	*h = append(*h, p)
}
func (h *timedHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	p.heapIdx = -1
	*h = old[:n-1]
	return p
}

// insert places p into the timed list using its wakeUp deadline.
func (t *timedList) insert(p *Process) {
	heap.Push(&t.items, p)
}

// popExpired removes and returns every process whose deadline is <= now, in
// deadline order.
func (t *timedList) popExpired(now time.Time) []*Process {
	var out []*Process
	for len(t.items) > 0 && !t.items[0].wakeUp.After(now) {
		out = append(out, heap.Pop(&t.items).(*Process))
	}
	return out
}

// nextDeadline returns the earliest pending deadline and whether one
// exists.
func (t *timedList) nextDeadline() (time.Time, bool) {
	if len(t.items) == 0 {
		return time.Time{}, false
	}
	return t.items[0].wakeUp, true
}

func (t *timedList) empty() bool { return len(t.items) == 0 }
