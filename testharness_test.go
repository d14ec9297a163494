package procrt_test

import (
	"context"

	procrt "github.com/joeycumines/go-procrt"
)

// scriptFunc is the Go-native stand-in for a process body used by these
// tests: a closure given direct access to the process's Bridge, so the
// scheduler and channel machinery can be exercised end-to-end without
// depending on an embedded scripting engine.
type scriptFunc func(ctx context.Context, b *procrt.Bridge, args []procrt.Value) error

// funcIsolate is a minimal procrt.Isolate backed by a scriptFunc, standing
// in for the isolate/gojaisolate package in tests that only care about
// scheduler/channel/lifecycle behavior.
type funcIsolate struct {
	fn   scriptFunc
	args []procrt.Value
}

func funcIsolateFactory(*procrt.Runtime) (procrt.Isolate, error) {
	return &funcIsolate{}, nil
}

func (it *funcIsolate) LoadBody(body procrt.Body, args []procrt.Value) error {
	fn, ok := body.Dumped.(scriptFunc)
	if !ok {
		return &procrt.InvalidArgumentError{Message: "funcIsolate: Body.Dumped must be a scriptFunc"}
	}
	it.fn = fn
	it.args = args
	return nil
}

func (it *funcIsolate) Execute(ctx context.Context, bridge *procrt.Bridge) error {
	return it.fn(ctx, bridge, it.args)
}

func (it *funcIsolate) Reset() error {
	it.fn = nil
	it.args = nil
	return nil
}

func (it *funcIsolate) Close() error { return nil }

func (it *funcIsolate) Dump(callable any) (any, error) { return callable, nil }

// scriptBody wraps fn as a procrt.Body suitable for NewProc, using
// Body.Dumped as the carrier since funcIsolate has no source-text notion.
func scriptBody(fn scriptFunc) procrt.Body { return procrt.Body{Dumped: fn} }

type fataler interface {
	Helper()
	Fatalf(string, ...any)
}

func newTestRuntime(t fataler, opts ...procrt.Option) *procrt.Runtime {
	t.Helper()
	all := append([]procrt.Option{procrt.WithIsolateFactory(funcIsolateFactory)}, opts...)
	rt, err := procrt.New(all...)
	if err != nil {
		t.Fatalf("procrt.New: %v", err)
	}
	return rt
}
