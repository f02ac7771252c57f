package adapter

import (
	"fmt"

	"github.com/depscope/depscope/pkg/advisory"
	"github.com/depscope/depscope/pkg/geiger"
	"github.com/depscope/depscope/pkg/github"
	"github.com/depscope/depscope/pkg/metadata"
)

// The must* helpers narrow a vertex whose type the engine has already
// established. The engine guarantees resolvers only see vertices of the
// dispatched type, so a mismatch is an internal invariant violation.

func mustPackage(v Vertex) *metadata.Package {
	p, ok := v.AsPackage()
	if !ok {
		panic(badVariant(v, KindPackage))
	}
	return p
}

func mustGitHubRepository(v Vertex) *github.Repository {
	r, ok := v.AsGitHubRepository()
	if !ok {
		panic(badVariant(v, KindGitHubRepository))
	}
	return r
}

func mustGitHubUser(v Vertex) *github.User {
	u, ok := v.AsGitHubUser()
	if !ok {
		panic(badVariant(v, KindGitHubUser))
	}
	return u
}

func mustAdvisory(v Vertex) *advisory.Advisory {
	a, ok := v.AsAdvisory()
	if !ok {
		panic(badVariant(v, KindAdvisory))
	}
	return a
}

func mustAffectedFunction(v Vertex) advisory.Function {
	fn, ok := v.AsAffectedFunction()
	if !ok {
		panic(badVariant(v, KindAffectedFunctionVersions))
	}
	return fn
}

func mustUnsafety(v Vertex) geiger.Unsafety {
	u, ok := v.AsUnsafety()
	if !ok {
		panic(badVariant(v, KindGeigerUnsafety))
	}
	return u
}

func mustCategories(v Vertex) geiger.Categories {
	c, ok := v.AsCategories()
	if !ok {
		panic(badVariant(v, KindGeigerCategories))
	}
	return c
}

func mustCount(v Vertex) geiger.Count {
	c, ok := v.AsCount()
	if !ok {
		panic(badVariant(v, KindGeigerCount))
	}
	return c
}

func badVariant(v Vertex, want Kind) string {
	return fmt.Sprintf("adapter: %s vertex where %s expected", v.Kind(), want)
}
