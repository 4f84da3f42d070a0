// Package lockfile provides types and functions for working with vcspin lock reports.
package lockfile

import "vcspin/internal/gitpin"

// Schema version for the lock report format.
const SchemaVersion = 1

// Lockfile represents the vcspin.lock.yaml file structure.
type Lockfile struct {
	Schema int            `yaml:"schema"`
	Pins   map[string]Pin `yaml:"pins,omitempty"`
}

// Pin records the resolved hashes for a single vcs pin.
type Pin struct {
	URL        string `yaml:"url"`
	Tag        string `yaml:"tag,omitempty"`
	TagHash    string `yaml:"tagHash"`
	CommitHash string `yaml:"commitHash"`
}

// New creates a Lockfile from a resolved pin set.
func New(pins *gitpin.Set) *Lockfile {
	lf := &Lockfile{
		Schema: SchemaVersion,
		Pins:   make(map[string]Pin),
	}
	for _, name := range pins.Names() {
		pin, _ := pins.Get(name)
		lf.Pins[name] = Pin{
			URL:        pin.Source.URL,
			Tag:        pin.Source.Tag,
			TagHash:    pin.TagHash,
			CommitHash: pin.CommitHash,
		}
	}
	return lf
}
