package adapter

import (
	"context"
	"net/url"
	"strings"
)

// resolveRepository classifies a raw repository URL into a repository
// vertex. URLs that look like GitHub (the string contains "github.com",
// parses, and the host is exactly "github.com") are looked up through the
// repository-info client and yield the rich variant on success. Everything
// else, including parse failures, SSH-style addresses, other hosts, and
// failed lookups, degrades to the generic variant carrying the raw URL
// unchanged. False negatives are acceptable here; misclassification never
// fails the query.
func resolveRepository(ctx context.Context, rawURL string, client RepositoryClient) Vertex {
	if !strings.Contains(rawURL, "github.com") {
		return RepositoryVertex(rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host != "github.com" {
		return RepositoryVertex(rawURL)
	}

	owner, name, ok := splitRepoPath(u.Path)
	if !ok {
		return RepositoryVertex(rawURL)
	}

	repo, ok := client.Repository(ctx, owner, name)
	if !ok {
		return RepositoryVertex(rawURL)
	}
	return GitHubRepositoryVertex(repo)
}

// splitRepoPath extracts owner and repository name from a GitHub URL path,
// dropping a trailing ".git" and ignoring anything past the first two
// segments (tree/..., blob/...).
func splitRepoPath(path string) (owner, name string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
