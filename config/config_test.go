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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "fern", cfg.AppName)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "en", cfg.Locale)
	assert.True(t, cfg.VerifySSL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "", cfg.RedisPassword)
	assert.Equal(t, 60, cfg.FetchRequestsPerMinute)
	assert.Equal(t, 10485760, cfg.MaxResponseBytes)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fern.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
locale = "it"
port = 8080
kafka_brokers = ["a:9092", "b:9092"]
cache_ttl_seconds = 60
`), 0o600))

	t.Setenv("FERN_PORT", "9090")
	t.Setenv("FERN_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "it", cfg.Locale)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Minute, cfg.CacheTTL())
}

func TestLoad_VerifySSLOverride(t *testing.T) {
	t.Setenv("IMDBINFO_VERIFY_SSL", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.VerifySSL)

	t.Setenv("IMDBINFO_VERIFY_SSL", "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_ListFromEnv(t *testing.T) {
	t.Setenv("FERN_KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad int", key: "FERN_PORT", val: "eighty"},
		{name: "out of range", key: "FERN_PORT", val: "70000"},
		{name: "bad level", key: "FERN_LOG_LEVEL", val: "loud"},
		{name: "bad compression", key: "FERN_KAFKA_COMPRESSION", val: "brotli"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_FileKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fern.toml")
	require.NoError(t, os.WriteFile(path, []byte("verify_ssl = false\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.VerifySSL)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "snappy", cfg.KafkaCompression)

	t.Setenv("IMDBINFO_VERIFY_SSL", "true")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.VerifySSL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
