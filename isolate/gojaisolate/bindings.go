package gojaisolate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dop251/goja"

	procrt "github.com/joeycumines/go-procrt"
)

// bindGlobals installs the runtime API every process body may call,
// spec.md §6's required primitive set, as global functions on vm. Each
// binding converts its goja arguments to procrt.Value, calls straight
// through to bridge (which may block this goroutine - safe, since it is
// this process's own dedicated goroutine), and converts the result back.
func bindGlobals(ctx context.Context, vm *goja.Runtime, bridge *procrt.Bridge) {
	must := func(name string, fn func(goja.FunctionCall) goja.Value) {
		if err := vm.Set(name, fn); err != nil {
			panic(vm.NewGoError(fmt.Errorf("gojaisolate: failed to bind %q: %w", name, err)))
		}
	}

	must("send", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		vals, err := argsToValues(call.Arguments[1:])
		if err != nil {
			// The value never reached the channel, but a receiver may
			// already be parked on it - wake them with the same
			// diagnostic instead of leaving them blocked forever.
			panic(vm.NewGoError(bridge.SendInvalid(ctx, name, err.(*procrt.UnsupportedValueError))))
		}
		if err := bridge.Send(ctx, name, vals); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})

	must("receive", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		async := !goja.IsUndefined(call.Argument(1)) && call.Argument(1).ToBoolean()
		vals, err := bridge.Receive(ctx, name, async)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return valuesToGoja(vm, vals)
	})

	must("broadcast", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		vals, err := argsToValues(call.Arguments[1:])
		if err != nil {
			panic(vm.NewGoError(bridge.BroadcastInvalid(ctx, name, err.(*procrt.UnsupportedValueError))))
		}
		n, err := bridge.Broadcast(ctx, name, vals)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(n)
	})

	must("newchannel", func(call goja.FunctionCall) goja.Value {
		if err := bridge.NewChannel(call.Argument(0).String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})

	must("delchannel", func(call goja.FunctionCall) goja.Value {
		if err := bridge.DelChannel(call.Argument(0).String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})

	must("isopen", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(bridge.IsOpen(call.Argument(0).String()))
	})

	must("newproc", func(call goja.FunctionCall) goja.Value {
		src := call.Argument(0).String()
		vals, err := argsToValues(call.Arguments[1:])
		if err != nil {
			panic(vm.NewGoError(err))
		}
		id, err := bridge.NewProc(procrt.Body{Source: src}, vals)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(id)
	})

	must("setnumworkers", func(call goja.FunctionCall) goja.Value {
		n := call.Argument(0).ToInteger()
		if err := bridge.SetNumWorkers(int(n)); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})

	must("getnumworkers", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(bridge.GetNumWorkers())
	})

	must("recycle", func(call goja.FunctionCall) goja.Value {
		bridge.Recycle(int(call.Argument(0).ToInteger()))
		return goja.Undefined()
	})

	must("sleep", func(call goja.FunctionCall) goja.Value {
		secs := call.Argument(0).ToFloat()
		if err := bridge.Sleep(ctx, time.Duration(secs*float64(time.Second))); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})

	// period(seconds) returns a rate handle object whose sleep() method
	// advances a drift-free deadline - spec.md §4.3's sleep(rate).
	must("period", func(call goja.FunctionCall) goja.Value {
		secs := call.Argument(0).ToFloat()
		rate, err := bridge.Period(time.Duration(secs * float64(time.Second)))
		if err != nil {
			panic(vm.NewGoError(err))
		}
		obj := vm.NewObject()
		_ = obj.Set("sleep", func(goja.FunctionCall) goja.Value {
			if err := bridge.RateSleep(ctx, rate); err != nil {
				panic(vm.NewGoError(err))
			}
			return goja.Undefined()
		})
		return obj
	})

	must("yield", func(call goja.FunctionCall) goja.Value {
		if err := bridge.Yield(ctx); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})

	must("wait", func(call goja.FunctionCall) goja.Value {
		if err := bridge.Wait(ctx); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})
}

// argsToValues converts a goja call's trailing arguments into procrt
// Values, reporting the offending argument's position on failure.
func argsToValues(args []goja.Value) ([]procrt.Value, error) {
	out := make([]procrt.Value, len(args))
	for i, a := range args {
		v, err := gojaToValue(a)
		if err != nil {
			if uv, ok := err.(*procrt.UnsupportedValueError); ok {
				uv.Index = i
			}
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// gojaToValue converts a single goja.Value to its neutral procrt.Value
// representation, restricted to the primitive set spec.md §4.2 allows to
// cross an isolate boundary.
func gojaToValue(v goja.Value) (procrt.Value, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return procrt.Nil, nil
	}
	switch ex := v.Export().(type) {
	case bool:
		return procrt.BoolValue(ex), nil
	case int64:
		return procrt.IntValue(ex), nil
	case int:
		return procrt.IntValue(int64(ex)), nil
	case float64:
		if ex == math.Trunc(ex) && !math.IsInf(ex, 0) {
			return procrt.IntValue(int64(ex)), nil
		}
		return procrt.FloatValue(ex), nil
	case string:
		return procrt.StringValue(ex), nil
	default:
		return procrt.Nil, &procrt.UnsupportedValueError{Type: fmt.Sprintf("%T", ex), ReceiverIndex: -1}
	}
}

// valueToGoja converts a single procrt.Value into its goja representation.
func valueToGoja(vm *goja.Runtime, v procrt.Value) goja.Value {
	switch v.Kind {
	case procrt.KindNil:
		return goja.Null()
	case procrt.KindBool:
		return vm.ToValue(v.Bool)
	case procrt.KindInt:
		return vm.ToValue(v.Int)
	case procrt.KindFloat:
		return vm.ToValue(v.Flt)
	case procrt.KindString:
		return vm.ToValue(v.Str)
	default:
		return goja.Undefined()
	}
}

// valuesToGoja converts a slice of procrt Values into a goja array.
func valuesToGoja(vm *goja.Runtime, vs []procrt.Value) goja.Value {
	items := make([]any, len(vs))
	for i, v := range vs {
		items[i] = valueToGoja(vm, v)
	}
	return vm.ToValue(vm.NewArray(items...))
}
