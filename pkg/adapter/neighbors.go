package adapter

import (
	"context"
	"fmt"
	"iter"

	"github.com/depscope/depscope/pkg/advisory"
	"github.com/depscope/depscope/pkg/query"
)

// Neighbors resolves, per input vertex, a lazy sequence of neighbor
// vertices, order-preserving across the input stream.
//
// Edge parameters are validated and backend clients acquired before the
// first vertex is consumed, so a bad parameter value or a client that cannot
// be created fails the operation up front; per-vertex resolution afterwards
// only distinguishes data from expected absence.
func (a *Adapter) Neighbors(ctx context.Context, vertices iter.Seq[Vertex], typeName, edge string, params query.Params) (iter.Seq2[Vertex, iter.Seq[Vertex]], error) {
	resolve, err := a.neighborResolver(ctx, typeName, edge, params)
	if err != nil {
		return nil, err
	}
	return func(yield func(Vertex, iter.Seq[Vertex]) bool) {
		for v := range vertices {
			if !yield(v, resolve(v)) {
				return
			}
		}
	}, nil
}

func (a *Adapter) neighborResolver(ctx context.Context, typeName, edge string, params query.Params) (func(Vertex) iter.Seq[Vertex], error) {
	switch typeName + "." + edge {
	case "Package.dependencies":
		return func(v Vertex) iter.Seq[Vertex] {
			ids := a.idx.dependencies(mustPackage(v).ID)
			return func(yield func(Vertex) bool) {
				for _, id := range ids {
					if !yield(PackageVertex(a.idx.lookup(id))) {
						return
					}
				}
			}
		}, nil

	case "Package.repository":
		client, err := a.repositoryClient(ctx)
		if err != nil {
			return nil, err
		}
		return func(v Vertex) iter.Seq[Vertex] {
			url := mustPackage(v).Repository
			if url == "" {
				return emptySeq
			}
			return singleSeq(resolveRepository(ctx, url, client))
		}, nil

	case "Package.advisoryHistory":
		q, err := advisoryQuery(params)
		if err != nil {
			return nil, fmt.Errorf("edge advisoryHistory: %w", err)
		}
		db, err := a.advisoryDatabase(ctx)
		if err != nil {
			return nil, err
		}
		return func(v Vertex) iter.Seq[Vertex] {
			advisories := db.Query(mustPackage(v).Name, q)
			return func(yield func(Vertex) bool) {
				for _, adv := range advisories {
					if !yield(AdvisoryVertex(adv)) {
						return
					}
				}
			}
		}, nil

	case "Package.geiger":
		client, err := a.geigerClient(ctx)
		if err != nil {
			return nil, err
		}
		return func(v Vertex) iter.Seq[Vertex] {
			pkg := mustPackage(v)
			u, ok := client.Usage(pkg.Name, pkg.Version)
			if !ok {
				// Every resolvable package is part of the scan; a missing
				// record means the scan and the snapshot disagree.
				panic(fmt.Sprintf("adapter: no unsafe-usage data for %s %s", pkg.Name, pkg.Version))
			}
			return singleSeq(UnsafetyVertex(u))
		}, nil

	case "GitHubRepository.owner":
		client, err := a.repositoryClient(ctx)
		if err != nil {
			return nil, err
		}
		return func(v Vertex) iter.Seq[Vertex] {
			owner := mustGitHubRepository(v).Owner
			if owner == nil {
				return emptySeq
			}
			user, ok := client.User(ctx, owner.Login)
			if !ok {
				return emptySeq
			}
			return singleSeq(GitHubUserVertex(user))
		}, nil

	case "Advisory.affectedFunctions":
		return func(v Vertex) iter.Seq[Vertex] {
			affected := mustAdvisory(v).Affected
			if affected == nil {
				return emptySeq
			}
			return func(yield func(Vertex) bool) {
				for _, fn := range affected.Functions {
					if !yield(AffectedFunctionVertex(fn)) {
						return
					}
				}
			}
		}, nil

	case "GeigerUnsafety.used":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CategoriesVertex(mustUnsafety(v).Used))
		}, nil
	case "GeigerUnsafety.unused":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CategoriesVertex(mustUnsafety(v).Unused))
		}, nil
	case "GeigerUnsafety.total":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CategoriesVertex(mustUnsafety(v).Total()))
		}, nil

	case "GeigerCategories.functions":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CountVertex(mustCategories(v).Functions))
		}, nil
	case "GeigerCategories.exprs":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CountVertex(mustCategories(v).Exprs))
		}, nil
	case "GeigerCategories.item_impls":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CountVertex(mustCategories(v).ItemImpls))
		}, nil
	case "GeigerCategories.item_traits":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CountVertex(mustCategories(v).ItemTraits))
		}, nil
	case "GeigerCategories.methods":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CountVertex(mustCategories(v).Methods))
		}, nil
	case "GeigerCategories.total":
		return func(v Vertex) iter.Seq[Vertex] {
			return singleSeq(CountVertex(mustCategories(v).Total()))
		}, nil

	default:
		return nil, fmt.Errorf("unknown edge %s.%s", typeName, edge)
	}
}

// advisoryQuery builds the advisory filter from the edge parameters.
// includeWithdrawn is required; arch, os, and minSeverity are optional but
// must name known values when present.
func advisoryQuery(params query.Params) (advisory.Query, error) {
	var q advisory.Query
	var err error

	if q.IncludeWithdrawn, err = params.Bool("includeWithdrawn"); err != nil {
		return q, err
	}
	if s, ok, err := params.String("arch"); err != nil {
		return q, err
	} else if ok {
		if q.Arch, err = advisory.ParseArch(s); err != nil {
			return q, err
		}
	}
	if s, ok, err := params.String("os"); err != nil {
		return q, err
	} else if ok {
		if q.OS, err = advisory.ParseOS(s); err != nil {
			return q, err
		}
	}
	if s, ok, err := params.String("minSeverity"); err != nil {
		return q, err
	} else if ok {
		if q.MinSeverity, err = advisory.ParseSeverity(s); err != nil {
			return q, err
		}
	}
	return q, nil
}

func emptySeq(func(Vertex) bool) {}

func singleSeq(v Vertex) iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		yield(v)
	}
}
