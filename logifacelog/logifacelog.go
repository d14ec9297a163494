// Package logifacelog provides the runtime's concrete Logger, wiring
// procrt.Logger to github.com/joeycumines/logiface with the
// github.com/joeycumines/stumpy JSON backend - SPEC_FULL.md's ambient
// logging stack, grounded on logiface-stumpy/example_test.go's own usage
// of stumpy.L.New.
package logifacelog

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	procrt "github.com/joeycumines/go-procrt"
)

// Logger adapts a *logiface.Logger[*stumpy.Event] to procrt.Logger.
type Logger struct {
	l *logiface.Logger[*stumpy.Event]
}

// New builds a Logger writing newline-delimited JSON via stumpy, using
// opts to further configure the stumpy backend (e.g. stumpy.WithWriter,
// stumpy.WithTimeField).
func New(opts ...stumpy.Option) *Logger {
	return &Logger{l: stumpy.L.New(stumpy.L.WithStumpy(opts...))}
}

func (g *Logger) Debugf(format string, args ...any) { g.l.Debug().Logf(format, args...) }
func (g *Logger) Infof(format string, args ...any)  { g.l.Info().Logf(format, args...) }
func (g *Logger) Errorf(format string, args ...any) { g.l.Err().Logf(format, args...) }

var _ procrt.Logger = (*Logger)(nil)
