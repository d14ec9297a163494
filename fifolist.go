package procrt

// fifoList is the intrusive singly-linked process queue from spec.md §2/§3:
// each Process carries exactly one "next" link, and is a member of at most
// one list at a time. This is the direct analog of the original's ready and
// channel queues, and of spec.md §9's "intrusive lists vs arena + index"
// design note - an intrusive link is sufficient given the one-list-at-a-time
// invariant.
type fifoList struct {
	head, tail *Process
	length     int
}

// pushBack appends p to the tail of the list. p must not currently belong to
// any list (p.next is clobbered).
func (l *fifoList) pushBack(p *Process) {
	p.next = nil
	if l.tail == nil {
		l.head, l.tail = p, p
	} else {
		l.tail.next = p
		l.tail = p
	}
	l.length++
}

// popFront removes and returns the head of the list, or nil if empty.
func (l *fifoList) popFront() *Process {
	p := l.head
	if p == nil {
		return nil
	}
	l.head = p.next
	if l.head == nil {
		l.tail = nil
	}
	p.next = nil
	l.length--
	return p
}

func (l *fifoList) empty() bool { return l.head == nil }

func (l *fifoList) len() int { return l.length }

// drain removes and returns every process currently queued, in FIFO order,
// leaving the list empty. Used by channel Destroy to wake every waiter.
func (l *fifoList) drain() []*Process {
	if l.head == nil {
		return nil
	}
	out := make([]*Process, 0, l.length)
	for p := l.popFront(); p != nil; p = l.popFront() {
		out = append(out, p)
	}
	return out
}
