package procrt

import "sync"

// recyclePool is the bounded FIFO of finished, reset Process records
// available for reuse by newproc - spec.md §4.3. SPEC_FULL.md supplements
// the distilled spec with original_source/src/lpsched.c's own recycle
// behavior: shrinking the limit below the pool's current size immediately
// closes and discards the surplus, rather than waiting for it to drain
// naturally.
type recyclePool struct {
	mu    sync.Mutex
	limit int
	items []*Process
}

func newRecyclePool(limit int) *recyclePool {
	if limit < 0 {
		limit = 0
	}
	return &recyclePool{limit: limit}
}

// setLimit changes the pool's capacity, trimming and closing any surplus
// entries immediately if the new limit is smaller than the current
// population.
func (rp *recyclePool) setLimit(n int) {
	if n < 0 {
		n = 0
	}
	rp.mu.Lock()
	rp.limit = n
	var surplus []*Process
	if len(rp.items) > n {
		surplus = rp.items[n:]
		rp.items = rp.items[:n:n]
	}
	rp.mu.Unlock()

	for _, p := range surplus {
		_ = p.isolate.Close()
	}
}

// offer returns p to the pool for reuse, or discards it (closing its
// isolate) if the pool is already at capacity.
func (rp *recyclePool) offer(p *Process) {
	rp.mu.Lock()
	if len(rp.items) >= rp.limit {
		rp.mu.Unlock()
		_ = p.isolate.Close()
		return
	}
	rp.items = append(rp.items, p)
	rp.mu.Unlock()
}

// take returns a reusable Process, or nil if the pool is empty.
func (rp *recyclePool) take() *Process {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if len(rp.items) == 0 {
		return nil
	}
	p := rp.items[0]
	copy(rp.items, rp.items[1:])
	rp.items[len(rp.items)-1] = nil
	rp.items = rp.items[:len(rp.items)-1]
	return p
}

func (rp *recyclePool) drainAll() []*Process {
	rp.mu.Lock()
	out := rp.items
	rp.items = nil
	rp.mu.Unlock()
	return out
}
