package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/depscope/depscope/pkg/httpclient"
)

func newTestClient(t *testing.T, srvURL string) *Client {
	t.Helper()
	cache, err := httpclient.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return &Client{
		Client:  httpclient.NewClient(cache, nil),
		baseURL: srvURL,
	}
}

func TestRepository(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/repos/foo/libfoo" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"name": "libfoo",
			"html_url": "https://github.com/foo/libfoo",
			"stargazers_count": 1234,
			"forks_count": 56,
			"open_issues_count": 7,
			"has_issues": true,
			"archived": false,
			"fork": false,
			"owner": {"login": "foo"}
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	repo, ok := client.Repository(ctx, "foo", "libfoo")
	if !ok {
		t.Fatal("Repository() ok = false")
	}
	if repo.Stars != 1234 || repo.Forks != 56 || repo.OpenIssues != 7 {
		t.Errorf("Repository() = %+v", repo)
	}
	if !repo.HasIssues || repo.Archived || repo.Fork {
		t.Errorf("Repository() flags = %+v", repo)
	}
	if repo.Owner == nil || repo.Owner.Login != "foo" {
		t.Errorf("Repository().Owner = %+v", repo.Owner)
	}

	// Second lookup is served from the cache.
	if _, ok := client.Repository(ctx, "foo", "libfoo"); !ok {
		t.Fatal("cached Repository() ok = false")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}
}

func TestRepository_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if _, ok := client.Repository(context.Background(), "ghost", "nothing"); ok {
		t.Fatal("Repository() ok = true for missing repository")
	}
}

func TestUser(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/users/foo" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"login": "foo",
			"created_at": "2015-04-01T12:30:00Z",
			"followers": 99,
			"email": "foo@example.com"
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	user, ok := client.User(ctx, "foo")
	if !ok {
		t.Fatal("User() ok = false")
	}
	if user.Login != "foo" || user.Followers != 99 || user.Email != "foo@example.com" {
		t.Errorf("User() = %+v", user)
	}
	if want := time.Date(2015, 4, 1, 12, 30, 0, 0, time.UTC); !user.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", user.CreatedAt, want)
	}

	if _, ok := client.User(ctx, "foo"); !ok {
		t.Fatal("cached User() ok = false")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}
}

func TestUser_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if _, ok := client.User(context.Background(), "ghost"); ok {
		t.Fatal("User() ok = true for missing user")
	}
}
