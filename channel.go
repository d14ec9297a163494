package procrt

import "sync"

// Channel is a named synchronous rendezvous point - spec.md §4.2. A sender
// with no waiting receiver parks on sendQ with its payload staged in
// Process.args; a receiver with no waiting sender parks on recvQ the same
// way. Whichever side arrives second performs the actual copy and wakes the
// other, so rendezvous always completes on the arriving goroutine rather
// than via some third arbiter.
type Channel struct {
	name string
	rt   *Runtime

	mu        sync.Mutex
	sendQ     fifoList
	recvQ     fifoList
	destroyed bool
}

func newChannel(rt *Runtime, name string) *Channel {
	return &Channel{name: name, rt: rt}
}

// send implements Bridge.Send for this channel.
func (c *Channel) send(b *Bridge, vals []Value) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return &DestroyedError{Name: c.name, Op: "sender"}
	}
	if recv := c.recvQ.popFront(); recv != nil {
		c.mu.Unlock()
		recv.args = vals
		recv.err = nil
		recv.waitChannel = nil
		recv.waitSide = waitNone
		c.rt.wake(recv)
		return nil
	}
	p := b.p
	p.args = vals
	p.waitChannel = c
	p.waitSide = waitSend
	p.status.Store(StatusBlockedSend)
	c.sendQ.pushBack(p)
	c.mu.Unlock()

	b.suspend(OutcomeBlockedSend)
	return p.err
}

// receive implements Bridge.Receive for this channel. When async is true
// and no sender is currently parked, it returns a *NoSendersWaitingError
// immediately instead of blocking - spec.md §4.2's receive(ch, async?).
func (c *Channel) receive(b *Bridge, async bool) ([]Value, error) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return nil, &DestroyedError{Name: c.name, Op: "receiver"}
	}
	if send := c.sendQ.popFront(); send != nil {
		vals := send.args
		send.args = nil
		send.err = nil
		send.waitChannel = nil
		send.waitSide = waitNone
		c.mu.Unlock()
		c.rt.wake(send)
		return vals, nil
	}
	if async {
		c.mu.Unlock()
		return nil, &NoSendersWaitingError{Name: c.name}
	}
	p := b.p
	p.waitChannel = c
	p.waitSide = waitRecv
	p.status.Store(StatusBlockedRecv)
	c.recvQ.pushBack(p)
	c.mu.Unlock()

	vals := b.suspend(OutcomeBlockedRecv)
	return vals, p.err
}

// broadcast implements Bridge.Broadcast: it delivers vals to every process
// currently parked receiving on this channel and returns immediately,
// never blocking the caller and never queuing if no one is listening -
// spec.md §4.2's broadcast semantics.
func (c *Channel) broadcast(vals []Value) (int, error) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return 0, &DestroyedError{Name: c.name, Op: "sender"}
	}
	receivers := c.recvQ.drain()
	c.mu.Unlock()

	if len(receivers) == 0 {
		return 0, ErrNoReceivers
	}

	for _, recv := range receivers {
		recv.args = CopyValues(vals)
		recv.err = nil
		recv.waitChannel = nil
		recv.waitSide = waitNone
		c.rt.wake(recv)
	}
	return len(receivers), nil
}

// sendInvalid delivers err to a receiver already parked on this channel, if
// any, before returning it to the caller - the same symmetric failure
// delivery as original_source's luaproc_copyvalues, which pushes the
// diagnostic onto both sides of a rendezvous rather than leaving an
// already-matched partner blocked forever (spec.md §7, §8 property 8).
func (c *Channel) sendInvalid(err *UnsupportedValueError) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return err
	}
	recv := c.recvQ.popFront()
	c.mu.Unlock()

	if recv != nil {
		recv.args = nil
		recv.err = err
		recv.waitChannel = nil
		recv.waitSide = waitNone
		c.rt.wake(recv)
	}
	return err
}

// broadcastInvalid delivers err to every receiver currently parked on this
// channel before returning it to the caller - the broadcast counterpart of
// sendInvalid.
func (c *Channel) broadcastInvalid(err *UnsupportedValueError) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return err
	}
	receivers := c.recvQ.drain()
	c.mu.Unlock()

	for i, recv := range receivers {
		recvErr := *err
		recvErr.ReceiverIndex = i
		recv.args = nil
		recv.err = &recvErr
		recv.waitChannel = nil
		recv.waitSide = waitNone
		c.rt.wake(recv)
	}
	return err
}

// destroy tears the channel down, waking every parked sender and receiver
// with a *DestroyedError - spec.md §4.2's DelChannel. Safe to call more
// than once; subsequent calls are no-ops over an already-empty channel.
func (c *Channel) destroy() {
	c.mu.Lock()
	c.destroyed = true
	waiters := append(c.sendQ.drain(), c.recvQ.drain()...)
	c.mu.Unlock()

	for _, p := range waiters {
		// op names what the waiter was waiting for, not what it was doing:
		// a parked sender was waiting for a receiver, and vice versa -
		// spec.md §8 S3, original_source's luaproc.c:977-984.
		op := "sender"
		if p.waitSide == waitSend {
			op = "receiver"
		}
		if p.waitChannel != c {
			c.rt.logger.Errorf("procrt: channel %q destroy found waiter parked on %v, not itself", c.name, p.waitChannel)
		}
		p.err = &DestroyedError{Name: c.name, Op: op}
		p.args = nil
		p.waitChannel = nil
		p.waitSide = waitNone
		c.rt.wake(p)
	}
}
