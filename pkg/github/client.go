// Package github provides the repository-info backend: repository and user
// metadata from the GitHub API, memoized per lookup key.
package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/depscope/depscope/pkg/httpclient"
)

// Client fetches repository and user records from the GitHub API. Lookups are
// cached by key ("repo:owner/name", "user:login") through the shared HTTP
// cache; repeated queries within a session never hit the network twice.
type Client struct {
	*httpclient.Client
	baseURL string
}

// NewClient creates a GitHub client. Pass an empty token for unauthenticated
// requests (lower rate limits). cacheDir and ttl configure the response
// cache; an empty cacheDir uses the default location.
func NewClient(token, cacheDir string, ttl time.Duration) (*Client, error) {
	cache, err := httpclient.NewCache(cacheDir, ttl)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:  httpclient.NewClient(cache.Namespace("github:"), headers),
		baseURL: "https://api.github.com",
	}, nil
}

// Repository fetches a repository record. The second return value is false
// when the repository does not exist or cannot be reached; that is an
// expected absence, not an error.
func (c *Client) Repository(ctx context.Context, owner, name string) (*Repository, bool) {
	key := "repo:" + owner + "/" + name

	var r Repository
	err := c.Cached(ctx, key, false, &r, func() error {
		url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, name)
		if err := c.Get(ctx, url, &r); err != nil {
			if errors.Is(err, httpclient.ErrNotFound) {
				return fmt.Errorf("%w: repository %s/%s", err, owner, name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &r, true
}

// User fetches a public user record by login. The second return value is
// false when the user does not exist or cannot be reached.
func (c *Client) User(ctx context.Context, login string) (*User, bool) {
	key := "user:" + login

	var u User
	err := c.Cached(ctx, key, false, &u, func() error {
		url := fmt.Sprintf("%s/users/%s", c.baseURL, login)
		if err := c.Get(ctx, url, &u); err != nil {
			if errors.Is(err, httpclient.ErrNotFound) {
				return fmt.Errorf("%w: user %s", err, login)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, false
	}
	return &u, true
}
