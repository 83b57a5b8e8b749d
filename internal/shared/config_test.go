package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		assert.Equal(t, "http://127.0.0.1:8000", config.API.BaseURL)
		assert.Equal(t, 3000, config.Server.Port)
		assert.False(t, config.Server.DevProxy)
		assert.Equal(t, "http://127.0.0.1:8000", config.Proxy.Target)
		assert.Equal(t, []string{"/api", "/media"}, config.Proxy.Prefixes)
		assert.Equal(t, 30*time.Second, config.Cache.TTLDuration())
		assert.Equal(t, "./musicdb.db", config.Database.Path)
		assert.NoError(t, config.Validate())
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		require.NoError(t, CreateConfigFile(configPath))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)

		assert.Error(t, CreateConfigFile(configPath), "creating config file again should fail")
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("Overrides Defaults", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			testConfig := `[server]
host = "0.0.0.0"
port = 8080
dev_proxy = true

[api]
base_url = "http://backend:9000"
requests_per_second = 2.5

[cache]
ttl = "2m"
`
			require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))

			config, err := LoadConfig(configPath)
			require.NoError(t, err)

			assert.Equal(t, "0.0.0.0:8080", config.Server.Addr())
			assert.True(t, config.Server.DevProxy)
			assert.Equal(t, "http://backend:9000", config.API.BaseURL)
			assert.Equal(t, 2.5, config.API.RequestsPerSecond)
			assert.Equal(t, 2*time.Minute, config.Cache.TTLDuration())
			assert.Equal(t, []string{"/api", "/media"}, config.Proxy.Prefixes, "unset keys keep defaults")
		})

		t.Run("Missing File", func(t *testing.T) {
			_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
			assert.Error(t, err)
		})

		t.Run("Invalid TOML", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(configPath, []byte("[server\nport = "), 0644))

			_, err := LoadConfig(configPath)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})

		t.Run("Invalid Port", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(configPath, []byte("[server]\nport = 70000\n"), 0644))

			_, err := LoadConfig(configPath)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Run("Environment Variables", func(t *testing.T) {
			t.Setenv(EnvAPIURL, "http://env-backend:8000")
			t.Setenv(EnvPort, "4000")
			t.Setenv(EnvLogLevel, "debug")

			config := DefaultConfig()
			require.NoError(t, config.ApplyEnv())

			assert.Equal(t, "http://env-backend:8000", config.API.BaseURL)
			assert.Equal(t, 4000, config.Server.Port)
			assert.Equal(t, "debug", config.Log.Level)
		})

		t.Run("Dotenv File", func(t *testing.T) {
			t.Setenv(EnvAPIURL, "")
			os.Unsetenv(EnvAPIURL)
			envPath := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(envPath, []byte("MUSICDB_API_URL=http://dotenv:8000\n"), 0644))

			config := DefaultConfig()
			require.NoError(t, config.ApplyEnv(envPath, filepath.Join(t.TempDir(), "missing.env")))

			assert.Equal(t, "http://dotenv:8000", config.API.BaseURL)
		})

		t.Run("Bad Port", func(t *testing.T) {
			t.Setenv(EnvPort, "abc")

			config := DefaultConfig()
			assert.ErrorIs(t, config.ApplyEnv(), ErrInvalidConfig)
		})
	})
}
