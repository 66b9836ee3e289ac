package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrab/internal/logger"
)

type recordingBackend struct {
	message string
	title   string
	timeout time.Duration
	err     error
}

func (b *recordingBackend) Name() string { return "recording" }

func (b *recordingBackend) Send(message, title string, timeout time.Duration) error {
	b.message = message
	b.title = title
	b.timeout = timeout
	return b.err
}

func writeStubBinary(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))
}

func TestDetect_PriorityOrder(t *testing.T) {
	binDir := t.TempDir()
	writeStubBinary(t, binDir, "notify-send")
	writeStubBinary(t, binDir, "zenity")
	t.Setenv("PATH", binDir)

	backend := Detect()
	require.NotNil(t, backend)
	assert.Equal(t, "notify-send", backend.Name())
}

func TestDetect_FallsThroughChain(t *testing.T) {
	binDir := t.TempDir()
	writeStubBinary(t, binDir, "zenity")
	t.Setenv("PATH", binDir)

	backend := Detect()
	require.NotNil(t, backend)
	assert.Equal(t, "zenity", backend.Name())
}

func TestDetect_NoneAvailable(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	assert.Nil(t, Detect())
}

func TestNotify_TimeoutBySeverity(t *testing.T) {
	backend := &recordingBackend{}
	n := NewWithBackend(logger.GetLogger(), backend)

	n.Info("hello")
	assert.Equal(t, "hello", backend.message)
	assert.Equal(t, "INFO", backend.title)
	assert.Equal(t, 3*time.Second, backend.timeout)

	n.Error("broken")
	assert.Equal(t, "broken", backend.message)
	assert.Equal(t, "ERROR", backend.title)
	assert.Equal(t, 5*time.Second, backend.timeout)
}

func TestNotify_ConsoleOnlyNeverPanics(t *testing.T) {
	n := NewWithBackend(logger.GetLogger(), nil)

	n.Info("no backend around")
	n.Error("still fine")
}

func TestNotify_BackendFailureSwallowed(t *testing.T) {
	backend := &recordingBackend{err: errors.New("dbus went away")}
	n := NewWithBackend(logger.GetLogger(), backend)

	n.Error("clone failed")
	assert.Equal(t, "clone failed", backend.message)
}
