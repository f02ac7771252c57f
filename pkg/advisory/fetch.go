package advisory

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/depscope/depscope/pkg/httpclient"
)

// archiveURL is the zip archive of the upstream advisory database.
const archiveURL = "https://github.com/rustsec/advisory-db/archive/refs/heads/main.zip"

// archiveTTL bounds how often the archive is re-downloaded. The database
// changes a few times a day at most; refetching per invocation would be rude
// to the host.
const archiveTTL = 24 * time.Hour

// Fetch downloads the advisory database archive and loads it. The raw
// archive is kept in cacheDir and reused while fresh, so only the first
// session in a day pays for the download.
func Fetch(ctx context.Context, client *httpclient.Client, cacheDir string) (*DB, error) {
	path := filepath.Join(cacheDir, "advisory-db.zip")

	if info, err := os.Stat(path); err == nil && time.Since(info.ModTime()) < archiveTTL {
		if data, err := os.ReadFile(path); err == nil {
			if db, err := OpenArchive(data); err == nil {
				return db, nil
			}
			// Corrupt cache file: fall through to a fresh download.
		}
	}

	data, err := client.GetBytes(ctx, archiveURL)
	if err != nil {
		return nil, fmt.Errorf("fetch advisory database: %w", err)
	}

	db, err := OpenArchive(data)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cacheDir, 0o755); err == nil {
		_ = os.WriteFile(path, data, 0o644)
	}
	return db, nil
}

// OpenArchive loads a database from a zip archive of the upstream
// repository. Only crates/<package>/<id>.md entries are considered; the
// archive's top-level directory prefix is ignored.
func OpenArchive(data []byte) (*DB, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("advisory archive: %w", err)
	}

	db := &DB{byPackage: make(map[string][]*Advisory)}
	for _, f := range zr.File {
		if !isRecordPath(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("advisory archive: %s: %w", f.Name, err)
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("advisory archive: %s: %w", f.Name, err)
		}
		adv, err := parseRecord(buf.String())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		db.add(adv)
	}
	if db.count == 0 {
		return nil, fmt.Errorf("advisory archive contains no records")
	}
	db.finish()
	return db, nil
}

// isRecordPath matches <prefix>/crates/<package>/<id>.md with any single
// leading directory, as produced by repository archive downloads.
func isRecordPath(name string) bool {
	if !strings.HasSuffix(name, ".md") {
		return false
	}
	parts := strings.Split(name, "/")
	return len(parts) == 4 && parts[1] == "crates"
}
