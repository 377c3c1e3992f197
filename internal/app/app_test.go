package app

import (
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/meur/cs2hub/internal/config"
)

func TestAppServesHealth(t *testing.T) {
	conf := &config.Server{
		ServiceAddress:  "127.0.0.1:0",
		DBPath:          filepath.Join(t.TempDir(), "app.db"),
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: 2 * time.Second,
	}

	var srv *http.Server
	app := fxtest.New(t, Options(conf, fx.NopLogger, fx.Populate(&srv))...)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, srv)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr)

	resp, err := http.Get("http://" + srv.Addr + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestAppFailsOnBadDatabasePath(t *testing.T) {
	conf := &config.Server{
		ServiceAddress:  "127.0.0.1:0",
		DBPath:          filepath.Join(t.TempDir(), "missing", "dir", "app.db"),
		ShutdownTimeout: time.Second,
	}

	app := fx.New(Options(conf, fx.NopLogger)...)
	assert.Error(t, app.Err())
}
