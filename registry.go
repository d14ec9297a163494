package procrt

import "sync"

// registry is the runtime's name -> *Channel table - spec.md §4.2's
// channel registry. It follows the lock hierarchy from spec.md §5: the
// registry mutex is always acquired first and released before any
// channel-local mutex is taken, so a goroutine never holds both at once
// and the two can never deadlock against each other.
type registry struct {
	mu       sync.Mutex
	channels map[string]*Channel
	rt       *Runtime
}

func newRegistry(rt *Runtime) *registry {
	return &registry{channels: make(map[string]*Channel), rt: rt}
}

// lookup returns the named channel without creating it. This is the
// lookup Send/Receive/Broadcast use - spec.md §4.2's send step 1 ("Locked-get
// channel; if absent -> (nil, 'does not exist')") and the equivalent
// receive/broadcast steps are explicit that a missing channel is an error,
// never an implicit registration, matching original_source/src/luaproc.c's
// own "channel '%s' does not exist" checks on send and receive.
func (r *registry) lookup(name string) (*Channel, error) {
	if name == "" {
		return nil, &InvalidArgumentError{Message: "channel name must not be empty"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.channels[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return ch, nil
}

// create makes name, failing with *AlreadyExistsError if it's already
// present - spec.md §4.2's explicit NewChannel.
func (r *registry) create(name string) error {
	if name == "" {
		return &InvalidArgumentError{Message: "channel name must not be empty"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.channels[name]; ok {
		return &AlreadyExistsError{Name: name}
	}
	r.channels[name] = newChannel(r.rt, name)
	return nil
}

// destroy removes name from the registry and tears down the Channel,
// waking every waiter with a *DestroyedError - spec.md §4.2's DelChannel.
// Returns *NotFoundError if name doesn't exist.
func (r *registry) destroy(name string) error {
	r.mu.Lock()
	ch, ok := r.channels[name]
	if !ok {
		r.mu.Unlock()
		return &NotFoundError{Name: name}
	}
	delete(r.channels, name)
	r.mu.Unlock()

	ch.destroy()
	return nil
}

// isOpen reports whether name currently exists.
func (r *registry) isOpen(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.channels[name]
	return ok
}
