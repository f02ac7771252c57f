package adapter

import (
	"github.com/depscope/depscope/pkg/advisory"
	"github.com/depscope/depscope/pkg/geiger"
	"github.com/depscope/depscope/pkg/github"
	"github.com/depscope/depscope/pkg/metadata"
)

// Kind names a vertex variant. Kind values match the type names of the
// declared query schema.
type Kind string

const (
	KindPackage                  Kind = "Package"
	KindRepository               Kind = "Repository"
	KindGitHubRepository         Kind = "GitHubRepository"
	KindGitHubUser               Kind = "GitHubUser"
	KindAdvisory                 Kind = "Advisory"
	KindAffectedFunctionVersions Kind = "AffectedFunctionVersions"
	KindGeigerUnsafety           Kind = "GeigerUnsafety"
	KindGeigerCategories         Kind = "GeigerCategories"
	KindGeigerCount              Kind = "GeigerCount"
)

// Vertex is one typed node value in the query graph: a tagged union over
// every entity kind the graph exposes. Vertices are transient; they are
// constructed on demand while a query executes and never persisted.
//
// The zero Vertex is invalid. Use the constructor for the variant you need
// and the As* methods to narrow.
type Vertex struct {
	kind Kind

	pkg        *metadata.Package
	repoURL    string
	ghRepo     *github.Repository
	ghUser     *github.User
	adv        *advisory.Advisory
	fn         advisory.Function
	unsafety   geiger.Unsafety
	categories geiger.Categories
	count      geiger.Count
}

// Kind returns the vertex variant.
func (v Vertex) Kind() Kind { return v.kind }

// PackageVertex wraps a package from the dependency snapshot.
func PackageVertex(p *metadata.Package) Vertex {
	return Vertex{kind: KindPackage, pkg: p}
}

// RepositoryVertex wraps a repository known only by its raw URL.
func RepositoryVertex(url string) Vertex {
	return Vertex{kind: KindRepository, repoURL: url}
}

// GitHubRepositoryVertex wraps a rich repository record.
func GitHubRepositoryVertex(r *github.Repository) Vertex {
	return Vertex{kind: KindGitHubRepository, ghRepo: r}
}

// GitHubUserVertex wraps a public user record.
func GitHubUserVertex(u *github.User) Vertex {
	return Vertex{kind: KindGitHubUser, ghUser: u}
}

// AdvisoryVertex wraps a security advisory.
func AdvisoryVertex(a *advisory.Advisory) Vertex {
	return Vertex{kind: KindAdvisory, adv: a}
}

// AffectedFunctionVertex wraps one affected function path with its version
// bounds.
func AffectedFunctionVertex(fn advisory.Function) Vertex {
	return Vertex{kind: KindAffectedFunctionVersions, fn: fn}
}

// UnsafetyVertex wraps a package's complete unsafe-usage record.
func UnsafetyVertex(u geiger.Unsafety) Vertex {
	return Vertex{kind: KindGeigerUnsafety, unsafety: u}
}

// CategoriesVertex wraps one per-category breakdown of unsafe-usage counts.
func CategoriesVertex(c geiger.Categories) Vertex {
	return Vertex{kind: KindGeigerCategories, categories: c}
}

// CountVertex wraps one safe/unsafe tally.
func CountVertex(c geiger.Count) Vertex {
	return Vertex{kind: KindGeigerCount, count: c}
}

// AsPackage narrows to the package variant.
func (v Vertex) AsPackage() (*metadata.Package, bool) {
	return v.pkg, v.kind == KindPackage
}

// AsRepository narrows to the generic repository variant.
func (v Vertex) AsRepository() (string, bool) {
	return v.repoURL, v.kind == KindRepository
}

// AsGitHubRepository narrows to the rich repository variant.
func (v Vertex) AsGitHubRepository() (*github.Repository, bool) {
	return v.ghRepo, v.kind == KindGitHubRepository
}

// AsGitHubUser narrows to the user variant.
func (v Vertex) AsGitHubUser() (*github.User, bool) {
	return v.ghUser, v.kind == KindGitHubUser
}

// AsAdvisory narrows to the advisory variant.
func (v Vertex) AsAdvisory() (*advisory.Advisory, bool) {
	return v.adv, v.kind == KindAdvisory
}

// AsAffectedFunction narrows to the affected-function variant.
func (v Vertex) AsAffectedFunction() (advisory.Function, bool) {
	return v.fn, v.kind == KindAffectedFunctionVersions
}

// AsUnsafety narrows to the unsafe-usage variant.
func (v Vertex) AsUnsafety() (geiger.Unsafety, bool) {
	return v.unsafety, v.kind == KindGeigerUnsafety
}

// AsCategories narrows to the category-breakdown variant.
func (v Vertex) AsCategories() (geiger.Categories, bool) {
	return v.categories, v.kind == KindGeigerCategories
}

// AsCount narrows to the tally variant.
func (v Vertex) AsCount() (geiger.Count, bool) {
	return v.count, v.kind == KindGeigerCount
}

// webpage returns the URL for either repository variant.
func (v Vertex) webpage() (string, bool) {
	switch v.kind {
	case KindRepository:
		return v.repoURL, true
	case KindGitHubRepository:
		return v.ghRepo.HTMLURL, true
	default:
		return "", false
	}
}
