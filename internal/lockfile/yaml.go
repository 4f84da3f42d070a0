package lockfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLockfile is the default lock report name.
	DefaultLockfile = "vcspin.lock.yaml"
)

// Load reads a lock report from the given path.
func Load(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lock report: %w", err)
	}

	var lf Lockfile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock report: %w", err)
	}

	return &lf, nil
}

// Save writes the lock report next to the manifest.
func (lf *Lockfile) Save(dir string) error {
	return lf.SaveYAML(filepath.Join(dir, DefaultLockfile))
}

// SaveYAML writes the lock report in YAML format.
func (lf *Lockfile) SaveYAML(path string) error {
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing lock report: %w", err)
	}

	return nil
}
