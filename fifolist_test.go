package procrt

import "testing"

func TestFifoListOrdering(t *testing.T) {
	var l fifoList
	p1, p2, p3 := &Process{}, &Process{}, &Process{}
	l.pushBack(p1)
	l.pushBack(p2)
	l.pushBack(p3)

	if got := l.len(); got != 3 {
		t.Fatalf("len = %d, want 3", got)
	}
	if got := l.popFront(); got != p1 {
		t.Fatalf("popFront = %p, want p1 %p", got, p1)
	}
	if got := l.popFront(); got != p2 {
		t.Fatalf("popFront = %p, want p2 %p", got, p2)
	}
	if got := l.len(); got != 1 {
		t.Fatalf("len = %d, want 1", got)
	}
	if got := l.popFront(); got != p3 {
		t.Fatalf("popFront = %p, want p3 %p", got, p3)
	}
	if got := l.popFront(); got != nil {
		t.Fatalf("popFront on empty list = %v, want nil", got)
	}
	if !l.empty() {
		t.Fatal("expected list to be empty")
	}
}

func TestFifoListDrain(t *testing.T) {
	var l fifoList
	p1, p2, p3 := &Process{}, &Process{}, &Process{}
	l.pushBack(p1)
	l.pushBack(p2)
	l.pushBack(p3)

	drained := l.drain()
	if len(drained) != 3 || drained[0] != p1 || drained[1] != p2 || drained[2] != p3 {
		t.Fatalf("drain = %v, want [p1 p2 p3]", drained)
	}
	if !l.empty() {
		t.Fatal("expected list empty after drain")
	}
	if l.drain() != nil {
		t.Fatal("drain on empty list should return nil")
	}
}
