package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/adapter"
	"github.com/depscope/depscope/pkg/metadata"
)

// snapshotFlags are the flags shared by every command that builds an
// adapter: where the dependency snapshot comes from and where backend
// caches live.
type snapshotFlags struct {
	manifestPath string
	metadataFile string
	cacheDir     string
}

func (f *snapshotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.manifestPath, "manifest-path", "Cargo.toml", "path to the project manifest")
	cmd.Flags().StringVar(&f.metadataFile, "metadata-file", "", "read the dependency snapshot from a JSON file instead of running cargo")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", os.Getenv("DEPSCOPE_CACHE_DIR"), "directory for backend caches (default ~/.cache/depscope)")
}

// load reads the dependency snapshot from the configured source.
func (f *snapshotFlags) load(ctx context.Context) (*metadata.Snapshot, error) {
	if f.metadataFile != "" {
		return metadata.LoadFile(f.metadataFile)
	}
	return metadata.FromManifest(ctx, f.manifestPath)
}

// build loads the snapshot and constructs an adapter over it.
func (f *snapshotFlags) build(ctx context.Context, opts ...adapter.Option) (*adapter.Adapter, error) {
	snap, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		adapter.WithCacheDir(f.cacheDir),
		adapter.WithGitHubToken(githubToken()),
	)
	return adapter.New(snap, opts...)
}

// githubToken returns the token for the repository-info client, if any.
func githubToken() string {
	if t := os.Getenv("DEPSCOPE_GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GITHUB_TOKEN")
}

// cacheDir resolves the cache directory the same way the backends do.
func cacheDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("cannot resolve home directory for cache")
	}
	return home + "/.cache/depscope", nil
}
