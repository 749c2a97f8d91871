package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownDataset is returned when a caller references a dataset id that
// is not in the registry. This is the one contract error the engine surfaces;
// every data-shape problem degrades to empty data instead.
var ErrUnknownDataset = errors.New("unknown dataset")

// Source names the backing locations of one dataset. The results and raw
// directories belong to the rendering layer and are carried as opaque paths.
type Source struct {
	Summary      string `yaml:"summary"`
	HardMetrics  string `yaml:"hard_metrics"`
	Interactions string `yaml:"interactions"`
	ResultsDir   string `yaml:"results_dir"`
	RawDir       string `yaml:"raw_dir"`
}

// Registry maps dataset ids to their sources.
type Registry struct {
	sources map[string]Source
}

type registryFile struct {
	Datasets map[string]Source `yaml:"datasets"`
}

// NewRegistry builds a registry from an explicit mapping.
func NewRegistry(sources map[string]Source) *Registry {
	if sources == nil {
		sources = make(map[string]Source)
	}
	return &Registry{sources: sources}
}

// LoadRegistry reads a YAML registry file. Relative source paths are
// resolved against the file's directory.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}

	base := filepath.Dir(path)
	sources := make(map[string]Source, len(file.Datasets))
	for id, src := range file.Datasets {
		src.Summary = resolveAgainst(base, src.Summary)
		src.HardMetrics = resolveAgainst(base, src.HardMetrics)
		src.Interactions = resolveAgainst(base, src.Interactions)
		src.ResultsDir = resolveAgainst(base, src.ResultsDir)
		src.RawDir = resolveAgainst(base, src.RawDir)
		sources[id] = src
	}

	return &Registry{sources: sources}, nil
}

// Resolve returns the sources for a dataset id.
func (r *Registry) Resolve(id string) (Source, error) {
	src, ok := r.sources[id]
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrUnknownDataset, id)
	}
	return src, nil
}

// IDs returns the registered dataset ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func resolveAgainst(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
