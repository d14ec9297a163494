// Package gojaisolate provides the concrete procrt.Isolate implementation
// backed by github.com/dop251/goja, standing in for the private Lua state
// every process owned in the original luaproc - spec.md §6's "Isolate
// capability required from host language".
package gojaisolate

import (
	"context"
	"fmt"

	"github.com/dop251/goja"

	procrt "github.com/joeycumines/go-procrt"
)

// Factory returns a procrt.IsolateFactory that hands back a fresh
// goja-backed Isolate per process, suitable for procrt.WithIsolateFactory.
func Factory() procrt.IsolateFactory {
	return func(rt *procrt.Runtime) (procrt.Isolate, error) {
		return newIsolate(rt), nil
	}
}

// isolate wraps a single goja.Runtime. It is never accessed by more than
// one goroutine at a time: a process's dedicated goroutine is the only
// caller of Execute and everything it reaches.
type isolate struct {
	rt      *procrt.Runtime
	vm      *goja.Runtime
	program *goja.Program
}

func newIsolate(rt *procrt.Runtime) *isolate {
	return &isolate{rt: rt, vm: goja.New()}
}

// LoadBody compiles body.Source, or installs a previously dumped
// *goja.Program, and stages args as the global "args" array.
func (it *isolate) LoadBody(body procrt.Body, args []procrt.Value) error {
	switch {
	case body.Dumped != nil:
		prog, ok := body.Dumped.(*goja.Program)
		if !ok {
			return &procrt.InvalidArgumentError{Message: "gojaisolate: Body.Dumped must be a *goja.Program"}
		}
		it.program = prog
	case body.Source != "":
		prog, err := goja.Compile("body", body.Source, true)
		if err != nil {
			return &procrt.LoadFailureError{Cause: err}
		}
		it.program = prog
	default:
		return &procrt.InvalidArgumentError{Message: "gojaisolate: Body must set Source or Dumped"}
	}
	if err := it.vm.Set("args", valuesToGoja(it.vm, args)); err != nil {
		return &procrt.LoadFailureError{Cause: err}
	}
	return nil
}

// Execute binds the runtime API as globals and runs the loaded program to
// completion. A thrown JS exception or a native panic both become the
// returned error rather than escaping to the process's dedicated goroutine.
func (it *isolate) Execute(ctx context.Context, bridge *procrt.Bridge) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if exc, ok := r.(*goja.Exception); ok {
				err = fmt.Errorf("gojaisolate: uncaught exception: %s", exc.Error())
				return
			}
			err = fmt.Errorf("gojaisolate: panic during execution: %v", r)
		}
	}()
	bindGlobals(ctx, it.vm, bridge)
	_, err = it.vm.RunProgram(it.program)
	return err
}

// Reset discards the current goja.Runtime and allocates a fresh one, so a
// recycled process record never leaks globals or closures from its
// previous body into the next one.
func (it *isolate) Reset() error {
	it.vm = goja.New()
	it.program = nil
	return nil
}

// Close releases the isolate. goja.Runtime has no explicit teardown; this
// exists so Isolate's contract holds even for implementations that do.
func (it *isolate) Close() error {
	it.vm = nil
	it.program = nil
	return nil
}

// Dump serializes a loaded program back into its compiled form, mirroring
// Lua's string.dump, so a caller may pass the same compiled body to
// multiple newproc calls without recompiling.
func (it *isolate) Dump(callable any) (any, error) {
	switch v := callable.(type) {
	case *goja.Program:
		return v, nil
	case string:
		prog, err := goja.Compile("dump", v, true)
		if err != nil {
			return nil, &procrt.LoadFailureError{Cause: err}
		}
		return prog, nil
	default:
		return nil, &procrt.InvalidArgumentError{Message: fmt.Sprintf("gojaisolate: cannot dump value of type %T", callable)}
	}
}
