package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the backend response cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", os.Getenv("DEPSCOPE_CACHE_DIR"), "directory for backend caches (default ~/.cache/depscope)")

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := cacheDir(dir)
			if err != nil {
				return err
			}
			fmt.Println(resolved)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached backend responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := cacheDir(dir)
			if err != nil {
				return err
			}
			if _, err := os.Stat(resolved); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			entries, err := os.ReadDir(resolved)
			if err != nil {
				return fmt.Errorf("read cache dir: %w", err)
			}
			count := 0
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if err := os.Remove(filepath.Join(resolved, e.Name())); err == nil {
					count++
				}
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", resolved)
			return nil
		},
	})

	return cmd
}
