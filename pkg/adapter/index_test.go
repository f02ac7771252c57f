package adapter

import (
	"testing"
)

func TestBuildIndex(t *testing.T) {
	ix := buildIndex(testSnapshot())

	if ix.root != "app 1.0.0" {
		t.Errorf("root = %q", ix.root)
	}
	if len(ix.packages) != 3 {
		t.Errorf("len(packages) = %d, want 3", len(ix.packages))
	}
	if len(ix.order) != 3 {
		t.Errorf("len(order) = %d, want 3", len(ix.order))
	}
	// Every resolved id has both a package record and a dependency record.
	for _, id := range ix.order {
		if _, ok := ix.packages[id]; !ok {
			t.Errorf("resolved id %q has no package record", id)
		}
		if _, ok := ix.directDeps[id]; !ok {
			t.Errorf("resolved id %q has no dependency record", id)
		}
	}
}

func TestIndexLookup(t *testing.T) {
	ix := buildIndex(testSnapshot())
	if got := ix.lookup("libfoo 2.1.0"); got.Name != "libfoo" {
		t.Errorf("lookup() = %+v", got)
	}
}

func TestIndexLookup_MissPanics(t *testing.T) {
	ix := buildIndex(testSnapshot())
	defer func() {
		if recover() == nil {
			t.Fatal("lookup of unknown id did not panic")
		}
	}()
	ix.lookup("ghost 0.0.0")
}

func TestIndexDependencies(t *testing.T) {
	ix := buildIndex(testSnapshot())

	deps := ix.dependencies("app 1.0.0")
	if len(deps) != 2 || deps[0] != "libfoo 2.1.0" || deps[1] != "libbar 0.3.0" {
		t.Errorf("dependencies(app) = %v", deps)
	}
	if deps := ix.dependencies("libbar 0.3.0"); len(deps) != 0 {
		t.Errorf("dependencies(libbar) = %v, want empty", deps)
	}
}

func TestIndexDependencies_MissPanics(t *testing.T) {
	ix := buildIndex(testSnapshot())
	defer func() {
		if recover() == nil {
			t.Fatal("dependencies of unknown id did not panic")
		}
	}()
	ix.dependencies("ghost 0.0.0")
}
