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
	t.Setenv("INPUT_PATHS", "data/hurdat2-atl.txt")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []Source{{Path: "data/hurdat2-atl.txt"}}, cfg.Inputs)
	assert.Equal(t, SinkNone, cfg.Sink)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "hurdat2-records", cfg.KafkaTopic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.PostgresDSN)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("INPUT_PATHS", "a.txt, b.txt")
	t.Setenv("SINK", "kafka")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "best-track")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []Source{{Path: "a.txt"}, {Path: "b.txt"}}, cfg.Inputs)
	assert.Equal(t, SinkKafka, cfg.Sink)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "best-track", cfg.KafkaTopic)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_SourcesManifest(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`sources:
  - path: data/hurdat2-atl.txt
    basin: Atlantic
  - path: data/hurdat2-nepac.txt
    basin: Northeast Pacific
`), 0o600))
	t.Setenv("SOURCES_FILE", manifest)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []Source{
		{Path: "data/hurdat2-atl.txt", Basin: "Atlantic"},
		{Path: "data/hurdat2-nepac.txt", Basin: "Northeast Pacific"},
	}, cfg.Inputs)
}

func TestLoad_InputPathsOverrideManifest(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("sources:\n  - path: from-manifest.txt\n"), 0o600))
	t.Setenv("SOURCES_FILE", manifest)
	t.Setenv("INPUT_PATHS", "from-env.txt")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []Source{{Path: "from-env.txt"}}, cfg.Inputs)
}

func TestLoad_ManifestEntryWithoutPath(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("sources:\n  - basin: Atlantic\n"), 0o600))
	t.Setenv("SOURCES_FILE", manifest)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a path")
}

func TestLoad_NoInputs(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INPUT_PATHS or SOURCES_FILE")
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("INPUT_PATHS", "a.txt")
	t.Setenv("SINK", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestLoad_UnknownSink(t *testing.T) {
	t.Setenv("INPUT_PATHS", "a.txt")
	t.Setenv("SINK", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown SINK")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("INPUT_PATHS", "a.txt")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("INPUT_PATHS", "a.txt")
	t.Setenv("SHUTDOWN_TIMEOUT", "-5s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}
