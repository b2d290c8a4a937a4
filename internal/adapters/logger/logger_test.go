package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fuse/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("compiled unit")
	lg.Warn("cache disabled")
	lg.Debug("hidden")

	assert.Equal(t, "compiled unit\n! cache disabled\n", buf.String())
}

func TestLogger_Verbose(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetVerbose(true)

	lg.Debug("resolving references")
	assert.Equal(t, "· resolving references\n", buf.String())

	buf.Reset()
	lg.SetVerbose(false)
	lg.Debug("hidden again")
	assert.Empty(t, buf.String())
}

func TestLogger_Error_Simple(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(os.ErrNotExist)

	assert.Equal(t, "✗ Error: file does not exist\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.Wrap(
		zerr.Wrap(errors.New("exec: \"go\": executable file not found in $PATH"), "compiler unavailable"),
		"failed to compile fragment",
	)
	lg.Error(err)

	want := "✗ Error: failed to compile fragment\n" +
		"\n" +
		"  Caused by:\n" +
		"    → compiler unavailable\n" +
		"    → exec: \"go\": executable file not found in $PATH\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_Error_Metadata(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(zerr.Wrap(errors.New("boom"), "package not found"), "reference", "example.com/lib")
	err = zerr.With(err, "version", "v1.2.0")
	lg.Error(err)

	assert.Contains(t, buf.String(), "Error: package not found")
	assert.Contains(t, buf.String(), "Context: reference=example.com/lib version=v1.2.0")
}

func TestLogger_Error_Multiline(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(fmt.Errorf("compilation failed\nlibrary form:\n  unit.go:1:1: error: bad"))

	want := "✗ Error: compilation failed\n" +
		"       library form:\n" +
		"         unit.go:1:1: error: bad\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("hello")
	lg.Error(errors.New("failed"))

	out := buf.String()
	require.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"msg":"operation failed"`)
	assert.Contains(t, out, `"error":"failed"`)
}
