package adapter

import (
	"context"
	"iter"
	"testing"

	"github.com/depscope/depscope/pkg/advisory"
	"github.com/depscope/depscope/pkg/geiger"
	"github.com/depscope/depscope/pkg/github"
	"github.com/depscope/depscope/pkg/metadata"
	"github.com/depscope/depscope/pkg/query"
)

// neighborsOf runs Neighbors over a single vertex and collects its neighbor
// sequence.
func neighborsOf(t *testing.T, a *Adapter, v Vertex, typeName, edge string, params query.Params) []Vertex {
	t.Helper()
	seq, err := a.Neighbors(context.Background(), singleSeq(v), typeName, edge, params)
	if err != nil {
		t.Fatalf("Neighbors(%s.%s) error = %v", typeName, edge, err)
	}
	for _, neighbors := range seq {
		return collect(neighbors)
	}
	t.Fatalf("Neighbors(%s.%s) yielded nothing", typeName, edge)
	return nil
}

func vertexFor(t *testing.T, a *Adapter, name string) Vertex {
	t.Helper()
	for _, pkg := range a.idx.packages {
		if pkg.Name == name {
			return PackageVertex(pkg)
		}
	}
	t.Fatalf("no package named %q in test snapshot", name)
	return Vertex{}
}

func TestNeighbors_Dependencies(t *testing.T) {
	a := newTestAdapter(t)

	got := packageNames(t, neighborsOf(t, a, vertexFor(t, a, "app"), "Package", "dependencies", nil))
	if len(got) != 2 || got[0] != "libfoo" || got[1] != "libbar" {
		t.Errorf("dependencies(app) = %v, want [libfoo libbar]", got)
	}

	if got := neighborsOf(t, a, vertexFor(t, a, "libbar"), "Package", "dependencies", nil); len(got) != 0 {
		t.Errorf("dependencies(libbar) = %d vertices, want none", len(got))
	}
}

func TestNeighbors_Repository(t *testing.T) {
	repos := &fakeRepoClient{repos: map[string]*github.Repository{
		"foo/libfoo": {Name: "libfoo", HTMLURL: "https://github.com/foo/libfoo", Stars: 1234},
	}}
	a := newTestAdapter(t, WithRepositoryClient(repos))

	t.Run("known github repository is rich", func(t *testing.T) {
		got := neighborsOf(t, a, vertexFor(t, a, "libfoo"), "Package", "repository", nil)
		if len(got) != 1 {
			t.Fatalf("repository(libfoo) = %d vertices, want 1", len(got))
		}
		repo, ok := got[0].AsGitHubRepository()
		if !ok {
			t.Fatalf("repository(libfoo) kind = %s, want GitHubRepository", got[0].Kind())
		}
		if repo.Stars != 1234 {
			t.Errorf("Stars = %d, want 1234", repo.Stars)
		}
	})

	t.Run("non-github host degrades to generic", func(t *testing.T) {
		got := neighborsOf(t, a, vertexFor(t, a, "libbar"), "Package", "repository", nil)
		if len(got) != 1 {
			t.Fatalf("repository(libbar) = %d vertices, want 1", len(got))
		}
		url, ok := got[0].AsRepository()
		if !ok {
			t.Fatalf("repository(libbar) kind = %s, want Repository", got[0].Kind())
		}
		if url != "https://git.example.org/bar/libbar" {
			t.Errorf("url = %q", url)
		}
	})

	t.Run("failed lookup degrades to generic", func(t *testing.T) {
		got := neighborsOf(t, a, vertexFor(t, a, "app"), "Package", "repository", nil)
		if len(got) != 1 {
			t.Fatalf("repository(app) = %d vertices, want 1", len(got))
		}
		if url, ok := got[0].AsRepository(); !ok || url != "https://github.com/acme/app" {
			t.Errorf("repository(app) = %s %q, want generic with raw URL", got[0].Kind(), url)
		}
	})

	t.Run("no repository URL yields empty", func(t *testing.T) {
		none := PackageVertex(&metadata.Package{ID: "lonely 0.1.0", Name: "lonely", Version: "0.1.0"})
		got := neighborsOf(t, a, none, "Package", "repository", nil)
		if len(got) != 0 {
			t.Errorf("repository without URL = %d vertices, want none", len(got))
		}
	})
}

func TestNeighbors_AdvisoryHistory(t *testing.T) {
	a := newTestAdapter(t, WithAdvisoryDatabase(testAdvisories()))
	libfoo := vertexFor(t, a, "libfoo")

	advisoryIDs := func(vertices []Vertex) []string {
		out := make([]string, len(vertices))
		for i, v := range vertices {
			adv, ok := v.AsAdvisory()
			if !ok {
				t.Fatalf("vertex %d is %s, want Advisory", i, v.Kind())
			}
			out[i] = adv.ID
		}
		return out
	}

	tests := []struct {
		name   string
		params query.Params
		want   []string
	}{
		{
			name:   "withdrawn excluded by default",
			params: query.Params{"includeWithdrawn": false},
			want:   []string{"RUSTSEC-2021-0001", "RUSTSEC-2021-0042"},
		},
		{
			name:   "withdrawn included on request",
			params: query.Params{"includeWithdrawn": true},
			want:   []string{"RUSTSEC-2020-0099", "RUSTSEC-2021-0001", "RUSTSEC-2021-0042"},
		},
		{
			name:   "severity floor",
			params: query.Params{"includeWithdrawn": false, "minSeverity": "high"},
			want:   []string{"RUSTSEC-2021-0001"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advisoryIDs(neighborsOf(t, a, libfoo, "Package", "advisoryHistory", tt.params))
			if len(got) != len(tt.want) {
				t.Fatalf("advisoryHistory = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("advisoryHistory = %v, want %v", got, tt.want)
				}
			}
		})
	}

	t.Run("package without advisories", func(t *testing.T) {
		got := neighborsOf(t, a, vertexFor(t, a, "libbar"), "Package", "advisoryHistory",
			query.Params{"includeWithdrawn": false})
		if len(got) != 0 {
			t.Errorf("advisoryHistory(libbar) = %d vertices, want none", len(got))
		}
	})

	t.Run("missing required parameter", func(t *testing.T) {
		_, err := a.Neighbors(context.Background(), singleSeq(libfoo), "Package", "advisoryHistory", query.Params{})
		if err == nil {
			t.Fatal("Neighbors() error = nil, want missing-parameter error")
		}
	})

	t.Run("invalid platform filter", func(t *testing.T) {
		_, err := a.Neighbors(context.Background(), singleSeq(libfoo), "Package", "advisoryHistory",
			query.Params{"includeWithdrawn": false, "arch": "quantum"})
		if err == nil {
			t.Fatal("Neighbors() error = nil, want unknown-architecture error")
		}
	})
}

func TestNeighbors_Geiger(t *testing.T) {
	scan := &fakeGeiger{usage: map[string]geiger.Unsafety{
		"libfoo 2.1.0": {
			Used:          geiger.Categories{Exprs: geiger.Count{Safe: 100, Unsafe: 4}},
			ForbidsUnsafe: false,
		},
	}}
	a := newTestAdapter(t, WithGeigerClient(scan))

	got := neighborsOf(t, a, vertexFor(t, a, "libfoo"), "Package", "geiger", nil)
	if len(got) != 1 {
		t.Fatalf("geiger(libfoo) = %d vertices, want 1", len(got))
	}
	u, ok := got[0].AsUnsafety()
	if !ok {
		t.Fatalf("geiger(libfoo) kind = %s, want GeigerUnsafety", got[0].Kind())
	}
	if u.Used.Exprs.Unsafe != 4 {
		t.Errorf("Used.Exprs.Unsafe = %d, want 4", u.Used.Exprs.Unsafe)
	}
}

func TestNeighbors_GeigerMissingDataPanics(t *testing.T) {
	a := newTestAdapter(t, WithGeigerClient(&fakeGeiger{}))

	seq, err := a.Neighbors(context.Background(), singleSeq(vertexFor(t, a, "libfoo")), "Package", "geiger", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("missing scan data did not panic")
		}
	}()
	for _, neighbors := range seq {
		collect(neighbors)
	}
}

func TestNeighbors_Owner(t *testing.T) {
	client := &fakeRepoClient{users: map[string]*github.User{
		"foo": {Login: "foo", Followers: 99},
	}}
	a := newTestAdapter(t, WithRepositoryClient(client))

	t.Run("known owner", func(t *testing.T) {
		repo := GitHubRepositoryVertex(&github.Repository{Owner: &github.Owner{Login: "foo"}})
		got := neighborsOf(t, a, repo, "GitHubRepository", "owner", nil)
		if len(got) != 1 {
			t.Fatalf("owner = %d vertices, want 1", len(got))
		}
		user, ok := got[0].AsGitHubUser()
		if !ok || user.Login != "foo" {
			t.Errorf("owner = %s, want GitHubUser foo", got[0].Kind())
		}
	})

	t.Run("no owner reference", func(t *testing.T) {
		repo := GitHubRepositoryVertex(&github.Repository{})
		if got := neighborsOf(t, a, repo, "GitHubRepository", "owner", nil); len(got) != 0 {
			t.Errorf("owner = %d vertices, want none", len(got))
		}
	})

	t.Run("failed user lookup", func(t *testing.T) {
		repo := GitHubRepositoryVertex(&github.Repository{Owner: &github.Owner{Login: "ghost"}})
		if got := neighborsOf(t, a, repo, "GitHubRepository", "owner", nil); len(got) != 0 {
			t.Errorf("owner = %d vertices, want none", len(got))
		}
	})
}

func TestNeighbors_AffectedFunctions(t *testing.T) {
	a := newTestAdapter(t, WithAdvisoryDatabase(testAdvisories()))
	advs := testAdvisories().Query("libfoo", advisory.Query{IncludeWithdrawn: true})

	withFunctions := AdvisoryVertex(advs[1]) // RUSTSEC-2021-0001
	got := neighborsOf(t, a, withFunctions, "Advisory", "affectedFunctions", nil)
	if len(got) != 1 {
		t.Fatalf("affectedFunctions = %d vertices, want 1", len(got))
	}
	fn, ok := got[0].AsAffectedFunction()
	if !ok || fn.Path != "libfoo::parser::parse" {
		t.Errorf("affectedFunctions[0] = %s %q", got[0].Kind(), fn.Path)
	}

	plain := AdvisoryVertex(advs[2]) // RUSTSEC-2021-0042, no affected section
	if got := neighborsOf(t, a, plain, "Advisory", "affectedFunctions", nil); len(got) != 0 {
		t.Errorf("affectedFunctions without section = %d vertices, want none", len(got))
	}
}

func TestNeighbors_GeigerStructure(t *testing.T) {
	a := newTestAdapter(t)
	u := geiger.Unsafety{
		Used:   geiger.Categories{Functions: geiger.Count{Safe: 1, Unsafe: 2}},
		Unused: geiger.Categories{Functions: geiger.Count{Safe: 3}},
	}

	for _, tt := range []struct {
		edge string
		want geiger.Categories
	}{
		{edge: "used", want: u.Used},
		{edge: "unused", want: u.Unused},
		{edge: "total", want: u.Total()},
	} {
		t.Run("unsafety "+tt.edge, func(t *testing.T) {
			got := neighborsOf(t, a, UnsafetyVertex(u), "GeigerUnsafety", tt.edge, nil)
			if len(got) != 1 {
				t.Fatalf("%s = %d vertices, want 1", tt.edge, len(got))
			}
			if c, ok := got[0].AsCategories(); !ok || c != tt.want {
				t.Errorf("%s = %+v, want %+v", tt.edge, c, tt.want)
			}
		})
	}

	cats := geiger.Categories{
		Functions:  geiger.Count{Safe: 1, Unsafe: 2},
		Exprs:      geiger.Count{Safe: 3, Unsafe: 4},
		ItemImpls:  geiger.Count{Safe: 5},
		ItemTraits: geiger.Count{Unsafe: 6},
		Methods:    geiger.Count{Safe: 7, Unsafe: 8},
	}
	for _, tt := range []struct {
		edge string
		want geiger.Count
	}{
		{edge: "functions", want: cats.Functions},
		{edge: "exprs", want: cats.Exprs},
		{edge: "item_impls", want: cats.ItemImpls},
		{edge: "item_traits", want: cats.ItemTraits},
		{edge: "methods", want: cats.Methods},
		{edge: "total", want: cats.Total()},
	} {
		t.Run("categories "+tt.edge, func(t *testing.T) {
			got := neighborsOf(t, a, CategoriesVertex(cats), "GeigerCategories", tt.edge, nil)
			if len(got) != 1 {
				t.Fatalf("%s = %d vertices, want 1", tt.edge, len(got))
			}
			if c, ok := got[0].AsCount(); !ok || c != tt.want {
				t.Errorf("%s = %+v, want %+v", tt.edge, c, tt.want)
			}
		})
	}
}

func TestNeighbors_UnknownEdge(t *testing.T) {
	a := newTestAdapter(t)
	input := singleSeq(vertexFor(t, a, "app"))
	if _, err := a.Neighbors(context.Background(), input, "Package", "maintainers", nil); err == nil {
		t.Fatal("Neighbors() error = nil, want unknown-edge error")
	}
}

func TestNeighbors_OrderPreserving(t *testing.T) {
	a := newTestAdapter(t)
	input := func(yield func(Vertex) bool) {
		for _, name := range []string{"app", "libfoo", "libbar"} {
			if !yield(vertexFor(t, a, name)) {
				return
			}
		}
	}

	seq, err := a.Neighbors(context.Background(), iter.Seq[Vertex](input), "Package", "dependencies", nil)
	if err != nil {
		t.Fatal(err)
	}
	wantCounts := []int{2, 1, 0}
	i := 0
	for v, neighbors := range seq {
		if got := len(collect(neighbors)); got != wantCounts[i] {
			pkg, _ := v.AsPackage()
			t.Errorf("dependencies(%s) = %d vertices, want %d", pkg.Name, got, wantCounts[i])
		}
		i++
	}
	if i != 3 {
		t.Errorf("yielded %d pairs, want 3", i)
	}
}
