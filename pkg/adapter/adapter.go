package adapter

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/depscope/depscope/pkg/metadata"
	"github.com/depscope/depscope/pkg/query"
)

// Adapter answers the four query-engine operations over one dependency
// snapshot. Construct with [New]; the snapshot is indexed once and treated
// as immutable for the adapter's lifetime.
type Adapter struct {
	idx          *index
	sortedStarts bool
	cacheDir     string
	githubToken  string

	repoSlot     clientSlot[RepositoryClient]
	advisorySlot clientSlot[AdvisoryDatabase]
	geigerSlot   clientSlot[GeigerClient]

	newRepositoryClient func(context.Context) (RepositoryClient, error)
	newAdvisoryDatabase func(context.Context) (AdvisoryDatabase, error)
	newGeigerClient     func(context.Context) (GeigerClient, error)
}

// assert the adapter satisfies the engine contract
var _ query.Adapter[Vertex] = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithRepositoryClient injects the repository-info backend, bypassing the
// default GitHub client.
func WithRepositoryClient(c RepositoryClient) Option {
	return func(a *Adapter) {
		a.newRepositoryClient = func(context.Context) (RepositoryClient, error) { return c, nil }
	}
}

// WithAdvisoryDatabase injects the advisory backend, bypassing the default
// network fetch.
func WithAdvisoryDatabase(db AdvisoryDatabase) Option {
	return func(a *Adapter) {
		a.newAdvisoryDatabase = func(context.Context) (AdvisoryDatabase, error) { return db, nil }
	}
}

// WithGeigerClient injects the unsafe-usage backend, bypassing the default
// cargo-geiger scan.
func WithGeigerClient(c GeigerClient) Option {
	return func(a *Adapter) {
		a.newGeigerClient = func(context.Context) (GeigerClient, error) { return c, nil }
	}
}

// WithSortedStarts sorts starting vertices by package id instead of
// resolution order, for deterministic output.
func WithSortedStarts() Option {
	return func(a *Adapter) { a.sortedStarts = true }
}

// WithCacheDir sets the directory for backend response caches. Empty means
// the default location.
func WithCacheDir(dir string) Option {
	return func(a *Adapter) { a.cacheDir = dir }
}

// WithGitHubToken sets the token used by the default repository-info client.
func WithGitHubToken(token string) Option {
	return func(a *Adapter) { a.githubToken = token }
}

// New builds an adapter over a validated snapshot (see [metadata.Load]).
func New(snapshot *metadata.Snapshot, opts ...Option) (*Adapter, error) {
	if snapshot == nil || snapshot.Resolve == nil {
		return nil, metadata.ErrNoResolve
	}
	a := &Adapter{idx: buildIndex(snapshot)}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// StartingVertices resolves a root edge of the query.
//
// Two edges exist: RootPackage yields exactly the root package, and
// Dependencies yields every resolved package, including the root iff the
// required includeRoot parameter is true. Any other edge name is a schema
// mismatch.
func (a *Adapter) StartingVertices(ctx context.Context, edge string, params query.Params) (iter.Seq[Vertex], error) {
	switch edge {
	case "RootPackage":
		root := a.idx.lookup(a.idx.root)
		return func(yield func(Vertex) bool) {
			yield(PackageVertex(root))
		}, nil

	case "Dependencies":
		includeRoot, err := params.Bool("includeRoot")
		if err != nil {
			return nil, fmt.Errorf("edge Dependencies: %w", err)
		}
		ids := slices.Clone(a.idx.order)
		if !includeRoot {
			ids = slices.DeleteFunc(ids, func(id metadata.ID) bool { return id == a.idx.root })
		}
		if a.sortedStarts {
			slices.Sort(ids)
		}
		return func(yield func(Vertex) bool) {
			for _, id := range ids {
				if !yield(PackageVertex(a.idx.lookup(id))) {
					return
				}
			}
		}, nil

	default:
		return nil, fmt.Errorf("unknown starting edge %q", edge)
	}
}
