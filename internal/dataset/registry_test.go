package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	content := `
datasets:
  poc-sample:
    summary: data/summary.csv
    hard_metrics: data/hard.csv
    interactions: data/interactions.csv
    results_dir: data/llm_results/v6
    raw_dir: /var/data/raw
`
	path := filepath.Join(dir, "datasets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"poc-sample"}, reg.IDs())

	src, err := reg.Resolve("poc-sample")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "summary.csv"), src.Summary)
	assert.Equal(t, filepath.Join(dir, "data", "hard.csv"), src.HardMetrics)
	assert.Equal(t, "/var/data/raw", src.RawDir, "absolute paths pass through")
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestResolveUnknownDataset(t *testing.T) {
	reg := NewRegistry(map[string]Source{"known": {}})

	_, err := reg.Resolve("mystery")
	assert.ErrorIs(t, err, ErrUnknownDataset)

	_, err = reg.Resolve("known")
	assert.NoError(t, err)
}
