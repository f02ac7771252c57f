package adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/depscope/depscope/pkg/advisory"
	"github.com/depscope/depscope/pkg/geiger"
	"github.com/depscope/depscope/pkg/github"
	"github.com/depscope/depscope/pkg/httpclient"
)

// RepositoryClient is the repository-info backend consumed by the adapter.
// Lookups report absence with a false second return value; absence is an
// expected outcome, not an error.
type RepositoryClient interface {
	Repository(ctx context.Context, owner, name string) (*github.Repository, bool)
	User(ctx context.Context, login string) (*github.User, bool)
}

// AdvisoryDatabase is the advisory backend consumed by the adapter.
type AdvisoryDatabase interface {
	Query(name string, q advisory.Query) []*advisory.Advisory
}

// GeigerClient is the unsafe-usage backend consumed by the adapter.
type GeigerClient interface {
	Usage(name, version string) (geiger.Unsafety, bool)
}

// clientSlot is an optional slot initialized at most once. Creating a
// backend client is an expensive remote or bulk operation, so both the
// client and a creation failure are memoized: a failed creation is terminal
// for that data category for the rest of the session.
type clientSlot[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (s *clientSlot[T]) get(create func() (T, error)) (T, error) {
	s.once.Do(func() {
		s.v, s.err = create()
	})
	return s.v, s.err
}

// repositoryClient returns the memoized repository-info client, creating it
// on first use.
func (a *Adapter) repositoryClient(ctx context.Context) (RepositoryClient, error) {
	return a.repoSlot.get(func() (RepositoryClient, error) {
		if a.newRepositoryClient != nil {
			return a.newRepositoryClient(ctx)
		}
		c, err := github.NewClient(a.githubToken, a.cacheDir, 24*time.Hour)
		if err != nil {
			return nil, fmt.Errorf("create repository client: %w", err)
		}
		return c, nil
	})
}

// advisoryDatabase returns the memoized advisory database, fetching it on
// first use.
func (a *Adapter) advisoryDatabase(ctx context.Context) (AdvisoryDatabase, error) {
	return a.advisorySlot.get(func() (AdvisoryDatabase, error) {
		if a.newAdvisoryDatabase != nil {
			return a.newAdvisoryDatabase(ctx)
		}
		cache, err := httpclient.NewCache(a.cacheDir, 0)
		if err != nil {
			return nil, fmt.Errorf("create advisory client: %w", err)
		}
		client := httpclient.NewClient(cache, map[string]string{
			"User-Agent": "depscope (https://github.com/depscope/depscope)",
		})
		db, err := advisory.Fetch(ctx, client, cache.Dir())
		if err != nil {
			return nil, fmt.Errorf("create advisory client: %w", err)
		}
		return db, nil
	})
}

// geigerClient returns the memoized unsafe-usage client, running the scan on
// first use.
func (a *Adapter) geigerClient(ctx context.Context) (GeigerClient, error) {
	return a.geigerSlot.get(func() (GeigerClient, error) {
		if a.newGeigerClient != nil {
			return a.newGeigerClient(ctx)
		}
		manifest := a.idx.lookup(a.idx.root).ManifestPath
		c, err := geiger.NewClient(ctx, manifest)
		if err != nil {
			return nil, fmt.Errorf("create geiger client: %w", err)
		}
		return c, nil
	})
}
