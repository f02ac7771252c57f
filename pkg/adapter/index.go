package adapter

import (
	"fmt"

	"github.com/depscope/depscope/pkg/metadata"
)

// index is the immutable dependency graph index: package records and direct
// dependency ids, keyed by package identity. Built once at adapter
// construction and shared by reference among all resolution closures; never
// mutated afterward.
type index struct {
	packages   map[metadata.ID]*metadata.Package
	directDeps map[metadata.ID][]metadata.ID
	order      []metadata.ID // resolved package ids in resolution order
	root       metadata.ID
}

func buildIndex(s *metadata.Snapshot) *index {
	ix := &index{
		packages:   make(map[metadata.ID]*metadata.Package, len(s.Packages)),
		directDeps: make(map[metadata.ID][]metadata.ID, len(s.Resolve.Nodes)),
		order:      make([]metadata.ID, 0, len(s.Resolve.Nodes)),
		root:       s.Resolve.Root,
	}
	for i := range s.Packages {
		p := &s.Packages[i]
		ix.packages[p.ID] = p
	}
	for _, n := range s.Resolve.Nodes {
		ix.directDeps[n.ID] = n.Dependencies
		ix.order = append(ix.order, n.ID)
	}
	return ix
}

// lookup returns the package for an id the index itself produced. A miss is
// an internal invariant violation, not a user-facing error: the snapshot
// validation guarantees every referenced id has a record.
func (ix *index) lookup(id metadata.ID) *metadata.Package {
	p, ok := ix.packages[id]
	if !ok {
		panic(fmt.Sprintf("adapter: package %q missing from index", id))
	}
	return p
}

// dependencies returns the direct dependency ids of a resolved package, in
// declared order. Every package the index produces is part of the resolved
// set, so a missing entry is an internal invariant violation.
func (ix *index) dependencies(id metadata.ID) []metadata.ID {
	deps, ok := ix.directDeps[id]
	if !ok {
		panic(fmt.Sprintf("adapter: no dependency record for package %q", id))
	}
	return deps
}
