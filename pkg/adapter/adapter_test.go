package adapter

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/depscope/depscope/pkg/advisory"
	"github.com/depscope/depscope/pkg/geiger"
	"github.com/depscope/depscope/pkg/github"
	"github.com/depscope/depscope/pkg/metadata"
	"github.com/depscope/depscope/pkg/query"
)

// testSnapshot models a small project: app depends on libfoo and libbar,
// libfoo depends on libbar.
func testSnapshot() *metadata.Snapshot {
	return &metadata.Snapshot{
		Packages: []metadata.Package{
			{
				ID:         "app 1.0.0",
				Name:       "app",
				Version:    "1.0.0",
				License:    "MIT",
				Repository: "https://github.com/acme/app",
			},
			{
				ID:         "libfoo 2.1.0",
				Name:       "libfoo",
				Version:    "2.1.0",
				Repository: "https://github.com/foo/libfoo",
			},
			{
				ID:         "libbar 0.3.0",
				Name:       "libbar",
				Version:    "0.3.0",
				License:    "Apache-2.0",
				Repository: "https://git.example.org/bar/libbar",
			},
		},
		Resolve: &metadata.Resolve{
			Nodes: []metadata.Node{
				{ID: "app 1.0.0", Dependencies: []metadata.ID{"libfoo 2.1.0", "libbar 0.3.0"}},
				{ID: "libfoo 2.1.0", Dependencies: []metadata.ID{"libbar 0.3.0"}},
				{ID: "libbar 0.3.0"},
			},
			Root: "app 1.0.0",
		},
	}
}

type fakeRepoClient struct {
	repos map[string]*github.Repository // keyed by "owner/name"
	users map[string]*github.User
}

func (f *fakeRepoClient) Repository(_ context.Context, owner, name string) (*github.Repository, bool) {
	r, ok := f.repos[owner+"/"+name]
	return r, ok
}

func (f *fakeRepoClient) User(_ context.Context, login string) (*github.User, bool) {
	u, ok := f.users[login]
	return u, ok
}

type fakeGeiger struct {
	usage map[string]geiger.Unsafety // keyed by "name version"
}

func (f *fakeGeiger) Usage(name, version string) (geiger.Unsafety, bool) {
	u, ok := f.usage[name+" "+version]
	return u, ok
}

func testAdvisories() *advisory.DB {
	return advisory.New([]*advisory.Advisory{
		{
			ID:       "RUSTSEC-2021-0001",
			Package:  "libfoo",
			Title:    "Heap overflow in libfoo parsing",
			Date:     time.Date(2021, 1, 8, 0, 0, 0, 0, time.UTC),
			Severity: advisory.SeverityCritical,
			Versions: advisory.VersionInfo{Patched: []string{">= 2.2.0"}},
			Affected: &advisory.Affected{
				Functions: []advisory.Function{
					{Path: "libfoo::parser::parse", Versions: []string{"< 2.2.0"}},
				},
			},
		},
		{
			ID:       "RUSTSEC-2021-0042",
			Package:  "libfoo",
			Title:    "Timing side channel",
			Date:     time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC),
			Severity: advisory.SeverityMedium,
		},
		{
			ID:        "RUSTSEC-2020-0099",
			Package:   "libfoo",
			Title:     "Withdrawn advisory",
			Date:      time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
			Withdrawn: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
			Severity:  advisory.SeverityHigh,
		},
	})
}

func newTestAdapter(t *testing.T, opts ...Option) *Adapter {
	t.Helper()
	a, err := New(testSnapshot(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func collect(seq iter.Seq[Vertex]) []Vertex {
	var out []Vertex
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func packageNames(t *testing.T, vertices []Vertex) []string {
	t.Helper()
	out := make([]string, len(vertices))
	for i, v := range vertices {
		pkg, ok := v.AsPackage()
		if !ok {
			t.Fatalf("vertex %d is %s, want Package", i, v.Kind())
		}
		out[i] = pkg.Name
	}
	return out
}

func TestNew_NilSnapshot(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, metadata.ErrNoResolve) {
		t.Fatalf("New(nil) error = %v, want ErrNoResolve", err)
	}
}

func TestStartingVertices_RootPackage(t *testing.T) {
	a := newTestAdapter(t)
	seq, err := a.StartingVertices(context.Background(), "RootPackage", nil)
	if err != nil {
		t.Fatalf("StartingVertices() error = %v", err)
	}
	got := packageNames(t, collect(seq))
	if len(got) != 1 || got[0] != "app" {
		t.Errorf("RootPackage = %v, want [app]", got)
	}
}

func TestStartingVertices_Dependencies(t *testing.T) {
	tests := []struct {
		name        string
		includeRoot bool
		want        []string
	}{
		{name: "with root", includeRoot: true, want: []string{"app", "libfoo", "libbar"}},
		{name: "without root", includeRoot: false, want: []string{"libfoo", "libbar"}},
	}

	a := newTestAdapter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := a.StartingVertices(context.Background(), "Dependencies",
				query.Params{"includeRoot": tt.includeRoot})
			if err != nil {
				t.Fatalf("StartingVertices() error = %v", err)
			}
			got := packageNames(t, collect(seq))
			if len(got) != len(tt.want) {
				t.Fatalf("Dependencies = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Dependencies = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestStartingVertices_Sorted(t *testing.T) {
	a := newTestAdapter(t, WithSortedStarts())
	seq, err := a.StartingVertices(context.Background(), "Dependencies",
		query.Params{"includeRoot": true})
	if err != nil {
		t.Fatal(err)
	}
	got := packageNames(t, collect(seq))
	want := []string{"app", "libbar", "libfoo"} // sorted by package id
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted Dependencies = %v, want %v", got, want)
		}
	}
}

func TestStartingVertices_MissingParam(t *testing.T) {
	a := newTestAdapter(t)
	if _, err := a.StartingVertices(context.Background(), "Dependencies", query.Params{}); err == nil {
		t.Fatal("StartingVertices() error = nil, want missing-parameter error")
	}
	if _, err := a.StartingVertices(context.Background(), "Dependencies",
		query.Params{"includeRoot": "yes"}); err == nil {
		t.Fatal("StartingVertices() error = nil, want type error")
	}
}

func TestStartingVertices_UnknownEdge(t *testing.T) {
	a := newTestAdapter(t)
	if _, err := a.StartingVertices(context.Background(), "AllTheThings", nil); err == nil {
		t.Fatal("StartingVertices() error = nil, want unknown-edge error")
	}
}

func TestStartingVertices_EarlyStop(t *testing.T) {
	a := newTestAdapter(t)
	seq, err := a.StartingVertices(context.Background(), "Dependencies",
		query.Params{"includeRoot": true})
	if err != nil {
		t.Fatal(err)
	}
	seen := 0
	for range seq {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("consumed %d vertices after break, want 1", seen)
	}
}

func TestClientSlot_MemoizesFailure(t *testing.T) {
	calls := 0
	var slot clientSlot[RepositoryClient]
	create := func() (RepositoryClient, error) {
		calls++
		return nil, errors.New("backend unavailable")
	}

	for range 3 {
		if _, err := slot.get(create); err == nil {
			t.Fatal("get() error = nil, want error")
		}
	}
	if calls != 1 {
		t.Errorf("create calls = %d, want 1", calls)
	}
}
