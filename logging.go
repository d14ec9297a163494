package procrt

// Logger is the runtime's sole dependency on a logging backend, deliberately
// decoupled from any concrete implementation - mirroring eventloop/logging.go's
// own rationale for not hard-wiring a logging library into the core loop.
// The logifacelog subpackage provides a concrete Logger backed by
// github.com/joeycumines/logiface and github.com/joeycumines/stumpy; tests
// and embedders that don't care about logs can pass nopLogger{}.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
