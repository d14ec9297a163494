package logifacelog_test

import (
	"bytes"
	"testing"

	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-procrt/logifacelog"
)

// TestLoggerLevels is grounded on logiface-stumpy's own json_test.go /
// event_test.go pattern of passing WithWriter(&buf) into WithStumpy's option
// set, capturing the rendered JSON line so the three procrt.Logger methods
// can be asserted against the level and message stumpy actually produced.
func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := logifacelog.New(stumpy.WithWriter(&buf), stumpy.WithTimeField(``))

	l.Infof("hello %s", "world")
	require.Contains(t, buf.String(), `"lvl":"info"`)
	require.Contains(t, buf.String(), `hello world`)
	buf.Reset()

	l.Debugf("debug %d", 1)
	require.Contains(t, buf.String(), `"lvl":"debug"`)
	require.Contains(t, buf.String(), `debug 1`)
	buf.Reset()

	l.Errorf("err %v", true)
	require.Contains(t, buf.String(), `"lvl":"err"`)
	require.Contains(t, buf.String(), `err true`)
}

// TestLoggerImplementsInterface is a compile-time-shaped check that
// *logifacelog.Logger satisfies procrt.Logger, re-asserted at runtime so a
// future signature change surfaces here first.
func TestLoggerImplementsInterface(t *testing.T) {
	l := logifacelog.New(stumpy.WithTimeField(``))
	require.NotPanics(t, func() {
		l.Debugf("debug %d", 1)
		l.Infof("info %s", "x")
		l.Errorf("err %v", true)
	})
}
