package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ID identifies a package within a snapshot. The value is opaque and assigned
// by the toolchain; two snapshots of the same project may use different
// renderings.
type ID string

// Package is one package in the snapshot's package set.
type Package struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Version      string `json:"version"`
	License      string `json:"license,omitempty"`    // SPDX expression, may be empty
	Repository   string `json:"repository,omitempty"` // source repository URL, may be empty
	Description  string `json:"description,omitempty"`
	ManifestPath string `json:"manifest_path,omitempty"`
}

// Node is one entry of the resolved dependency graph: a package and the ids
// of its direct dependencies, in resolution order.
type Node struct {
	ID           ID   `json:"id"`
	Dependencies []ID `json:"dependencies"`
}

// Resolve holds the resolved dependency graph and the designated root.
type Resolve struct {
	Nodes []Node `json:"nodes"`
	Root  ID     `json:"root"`
}

// Snapshot is a resolved dependency snapshot for a single project.
type Snapshot struct {
	Packages []Package `json:"packages"`
	Resolve  *Resolve  `json:"resolve"`
}

// ErrNoResolve is returned when a snapshot carries no resolution data, for
// example when it was produced with dependency resolution disabled.
var ErrNoResolve = errors.New("snapshot has no dependency resolution data")

// Load decodes and validates a snapshot. A snapshot is valid when it has
// resolution data, a root that exists in the package set, and every node and
// node dependency refers to a known package.
func Load(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a snapshot from a JSON file. See [Load].
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// RootPackage returns the package designated as root by the resolution data.
func (s *Snapshot) RootPackage() *Package {
	for i := range s.Packages {
		if s.Packages[i].ID == s.Resolve.Root {
			return &s.Packages[i]
		}
	}
	// validate guarantees the root exists
	panic(fmt.Sprintf("metadata: root package %q not in package set", s.Resolve.Root))
}

func (s *Snapshot) validate() error {
	if s.Resolve == nil || len(s.Resolve.Nodes) == 0 {
		return ErrNoResolve
	}
	if s.Resolve.Root == "" {
		return errors.New("snapshot has no root package")
	}

	known := make(map[ID]bool, len(s.Packages))
	for _, p := range s.Packages {
		known[p.ID] = true
	}
	if !known[s.Resolve.Root] {
		return fmt.Errorf("root package %q not in package set", s.Resolve.Root)
	}
	for _, n := range s.Resolve.Nodes {
		if !known[n.ID] {
			return fmt.Errorf("resolved node %q not in package set", n.ID)
		}
		for _, d := range n.Dependencies {
			if !known[d] {
				return fmt.Errorf("dependency %q of %q not in package set", d, n.ID)
			}
		}
	}
	return nil
}
