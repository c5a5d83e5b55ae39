package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCacheConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	cachePath := filepath.Join(dir, "cache.db")
	content := `{"cache_path": "` + cachePath + `"}`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestCacheStatsCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	configPath := writeCacheConfig(t)

	cmd := exec.Command(binaryPath, "cache", "stats", "--config", configPath)
	cmd.Env = append(os.Environ(), "DATABASE_URL=")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", string(output))
	assert.Contains(t, string(output), "COMPARISON CACHE")
	assert.Contains(t, string(output), "Entries:  0")
}

func TestCachePruneCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	configPath := writeCacheConfig(t)

	cmd := exec.Command(binaryPath, "cache", "prune", "--config", configPath)
	cmd.Env = append(os.Environ(), "DATABASE_URL=")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", string(output))
	assert.Contains(t, string(output), "Pruned 0 expired entries")
}
