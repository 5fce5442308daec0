package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseJson(t *testing.T) {

	t.Run("NoConfigFlagKeepsValues", func(t *testing.T) {
		origArgs := os.Args
		t.Cleanup(func() { os.Args = origArgs })
		os.Args = []string{"cmd"}

		var c Config
		c.LoadDefaults()
		want := c

		require.NotPanics(t, func() { parseJson(&c) })
		assert.Equal(t, want, c)
	})

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		path := writeTempJSON(t, `{
			"endpoint_addr": ":9999",
			"database_dsn": "postgres://json@host/db",
			"secret_key": "jsonsecret",
			"token_validity_duration": "45m",
			"cors_allow_origins": "https://json.example.com"
		}`)

		origArgs := os.Args
		t.Cleanup(func() { os.Args = origArgs })
		os.Args = []string{"cmd", "-config", path}

		var c Config
		c.LoadDefaults()

		require.NotPanics(t, func() { parseJson(&c) })

		assert.Equal(t, ":9999", c.EndpointAddr)
		assert.Equal(t, "postgres://json@host/db", c.DatabaseDSN)
		assert.Equal(t, "jsonsecret", c.SecretKey)
		assert.Equal(t, 45*time.Minute, c.TokenValidityDuration)
		assert.Equal(t, "https://json.example.com", c.CORSAllowOrigins)
	})

	t.Run("EmptyFieldsKeepCurrentValues", func(t *testing.T) {
		path := writeTempJSON(t, `{"endpoint_addr": ":9999"}`)

		origArgs := os.Args
		t.Cleanup(func() { os.Args = origArgs })
		os.Args = []string{"cmd", "-c", path}

		var c Config
		c.LoadDefaults()

		require.NotPanics(t, func() { parseJson(&c) })

		assert.Equal(t, ":9999", c.EndpointAddr)
		assert.Equal(t, "secretKey", c.SecretKey)
		assert.Equal(t, 1*time.Hour, c.TokenValidityDuration)
	})

	t.Run("MissingFilePanics", func(t *testing.T) {
		origArgs := os.Args
		t.Cleanup(func() { os.Args = origArgs })
		os.Args = []string{"cmd", "-config", filepath.Join(t.TempDir(), "nope.json")}

		var c Config
		c.LoadDefaults()

		assert.Panics(t, func() { parseJson(&c) })
	})

	t.Run("InvalidJSONPanics", func(t *testing.T) {
		path := writeTempJSON(t, `{not json`)

		origArgs := os.Args
		t.Cleanup(func() { os.Args = origArgs })
		os.Args = []string{"cmd", "-config", path}

		var c Config
		c.LoadDefaults()

		assert.Panics(t, func() { parseJson(&c) })
	})
}
