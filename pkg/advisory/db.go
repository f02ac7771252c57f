package advisory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// DB is an in-memory advisory database indexed by package name.
type DB struct {
	byPackage map[string][]*Advisory
	count     int
}

// Query selects advisories for one package.
//
// Withdrawn advisories are excluded unless IncludeWithdrawn is set. Arch, OS
// and MinSeverity are optional narrowing filters; their zero values match
// everything. An advisory that declares no platform list matches any platform.
type Query struct {
	IncludeWithdrawn bool
	Arch             Arch
	OS               OS
	MinSeverity      Severity
}

// New builds a database from already-parsed advisories. Useful for canned
// databases in tests and for callers that load records themselves.
func New(advisories []*Advisory) *DB {
	db := &DB{byPackage: make(map[string][]*Advisory)}
	for _, adv := range advisories {
		db.add(adv)
	}
	db.finish()
	return db
}

// Open loads a database from a local checkout. Records are expected under
// crates/<package>/<id>.md, the layout of the upstream repository.
func Open(dir string) (*DB, error) {
	root := filepath.Join(dir, "crates")
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("advisory database at %s: %w", dir, err)
	}

	db := &DB{byPackage: make(map[string][]*Advisory)}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		adv, err := parseRecord(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		db.add(adv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	db.finish()
	return db, nil
}

// Len returns the total number of advisories in the database.
func (db *DB) Len() int { return db.count }

// Packages returns the sorted names of all packages with at least one advisory.
func (db *DB) Packages() []string {
	names := make([]string, 0, len(db.byPackage))
	for name := range db.byPackage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Query returns the advisories for the named package that satisfy q, sorted
// by advisory id. The result is never shared; callers may modify it.
func (db *DB) Query(name string, q Query) []*Advisory {
	var out []*Advisory
	for _, adv := range db.byPackage[name] {
		if adv.IsWithdrawn() && !q.IncludeWithdrawn {
			continue
		}
		if !matchesPlatform(adv, q.Arch, q.OS) {
			continue
		}
		if q.MinSeverity > SeverityNone && adv.Severity < q.MinSeverity {
			continue
		}
		out = append(out, adv)
	}
	return out
}

func matchesPlatform(adv *Advisory, arch Arch, os OS) bool {
	if adv.Affected == nil {
		return true
	}
	if arch != "" && len(adv.Affected.Arch) > 0 && !slices.Contains(adv.Affected.Arch, arch) {
		return false
	}
	if os != "" && len(adv.Affected.OS) > 0 && !slices.Contains(adv.Affected.OS, os) {
		return false
	}
	return true
}

func (db *DB) add(adv *Advisory) {
	db.byPackage[adv.Package] = append(db.byPackage[adv.Package], adv)
	db.count++
}

func (db *DB) finish() {
	for _, advs := range db.byPackage {
		sort.Slice(advs, func(i, j int) bool { return advs[i].ID < advs[j].ID })
	}
}
