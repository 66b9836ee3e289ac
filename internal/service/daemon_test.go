package service

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrab/internal/config"
	"hubgrab/internal/logger"
)

func newTestDaemon(t *testing.T, port int) *Daemon {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Service.Port = port
	return NewDaemon(cfg, logger.GetLogger())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDaemon_ServeAndStop(t *testing.T) {
	d := newTestDaemon(t, 0)
	require.NoError(t, d.Start(okHandler()))
	defer d.Stop()

	_, port, err := net.SplitHostPort(d.Addr())
	require.NoError(t, err)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%s/", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	d.Stop()

	_, err = http.Get(fmt.Sprintf("http://127.0.0.1:%s/", port))
	assert.Error(t, err, "server should no longer accept connections")
}

func TestDaemon_DoubleStart(t *testing.T) {
	d := newTestDaemon(t, 0)
	require.NoError(t, d.Start(okHandler()))
	defer d.Stop()

	assert.Error(t, d.Start(okHandler()))
}

func TestDaemon_BindConflict(t *testing.T) {
	first := newTestDaemon(t, 0)
	require.NoError(t, first.Start(okHandler()))
	defer first.Stop()

	_, portStr, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	second := newTestDaemon(t, port)
	err = second.Start(okHandler())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bind")
}

func TestStopRunning_NotRunning(t *testing.T) {
	err := StopRunning(t.TempDir(), 45678)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not running")
}
