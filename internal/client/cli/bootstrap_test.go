package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/heavyhire/internal/client/config"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backendURL string) *config.Config {
	t.Helper()
	var c config.Config
	c.LoadDefaults()
	c.BackendURL = backendURL
	c.APIKey = "anon"
	c.LocalDBPath = filepath.Join(t.TempDir(), "hh.db")
	return &c
}

func TestNewAppFromConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer srv.Close()

	t.Run("rest backend with persisted session", func(t *testing.T) {
		c := testConfig(t, srv.URL)
		c.SessionPassphrase = "pass"
		c.StorageEndpoint = "http://127.0.0.1:9000"

		var out bytes.Buffer
		app, closeFn, err := NewAppFromConfig(context.Background(), c, logging.Nop(), strings.NewReader("whoami\nexit\n"), &out)
		require.NoError(t, err)
		defer closeFn()

		require.NotNil(t, app.avatars)
		app.Run(context.Background())
		assert.Contains(t, out.String(), "Please log in first")
		assert.False(t, app.isLoggedIn())
	})

	t.Run("memory only session without storage", func(t *testing.T) {
		c := testConfig(t, srv.URL)

		app, closeFn, err := NewAppFromConfig(context.Background(), c, logging.Nop(), strings.NewReader(""), &bytes.Buffer{})
		require.NoError(t, err)
		defer closeFn()
		assert.Nil(t, app.avatars)
	})

	t.Run("unknown row backend", func(t *testing.T) {
		c := testConfig(t, srv.URL)
		c.RowBackend = "mongo"
		_, _, err := NewAppFromConfig(context.Background(), c, logging.Nop(), strings.NewReader(""), &bytes.Buffer{})
		assert.ErrorContains(t, err, "unknown row backend")
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		c := testConfig(t, srv.URL)
		c.RowBackend = config.RowBackendPostgres
		_, _, err := NewAppFromConfig(context.Background(), c, logging.Nop(), strings.NewReader(""), &bytes.Buffer{})
		assert.ErrorContains(t, err, "DSN")
	})

	t.Run("bad backend url", func(t *testing.T) {
		c := testConfig(t, "not a url")
		_, _, err := NewAppFromConfig(context.Background(), c, logging.Nop(), strings.NewReader(""), &bytes.Buffer{})
		assert.Error(t, err)
	})
}
