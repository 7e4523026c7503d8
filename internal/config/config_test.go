package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env
	t.Setenv("KRISPY_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "krispy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_driver: redis
redis_addr: cache:6379
redis_db: 2
distributed_lock: true
listen_addr: ":9000"
`), 0o600))

	t.Setenv("KRISPY_CONFIG", path)
	t.Setenv("LISTEN_ADDR", ":7000")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("REDIS_TTL", "72h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.DistributedLock)
	assert.Equal(t, ":7000", cfg.ListenAddr, "environment wins over the file")
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 72*time.Hour, cfg.RedisTTL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BRIDGE_SECRET=from-dotenv\n"), 0o600))
	t.Setenv("KRISPY_CONFIG", "")
	t.Setenv("BRIDGE_SECRET", "")
	os.Unsetenv("BRIDGE_SECRET")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.BridgeSecret)
}

func TestLoad_BadValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("KRISPY_CONFIG", "")

	for key, value := range map[string]string{
		"REDIS_DB":         "two",
		"DISTRIBUTED_LOCK": "maybe",
		"STORE_TIMEOUT":    "soon",
		"REDIS_TTL":        "forever",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"memory", func(c *Config) { c.StoreDriver = DriverMemory }, false},
		{"postgres without url", func(c *Config) { c.StoreDriver = DriverPostgres }, true},
		{"postgres with url", func(c *Config) { c.StoreDriver = DriverPostgres; c.DatabaseURL = "postgres://x" }, false},
		{"dynamodb without table", func(c *Config) { c.StoreDriver = DriverDynamoDB }, true},
		{"mongo without uri", func(c *Config) { c.StoreDriver = DriverMongo }, true},
		{"unknown driver", func(c *Config) { c.StoreDriver = "cassandra" }, true},
		{"negative redis ttl", func(c *Config) { c.RedisTTL = -time.Second }, true},
		{"lock without redis", func(c *Config) { c.DistributedLock = true; c.RedisAddr = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
