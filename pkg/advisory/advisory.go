package advisory

import (
	"time"

	"github.com/Masterminds/semver/v3"
)

// Advisory is one security advisory for a single package.
//
// Date and Withdrawn are date-only in the source records; they are stored at
// midnight UTC.
type Advisory struct {
	ID          string    // e.g. "RUSTSEC-2021-0001"
	Package     string    // affected package name
	Title       string    // first heading of the record body
	Description string    // remaining record body
	URL         string    // upstream reference, may be empty
	Date        time.Time // disclosure date
	Withdrawn   time.Time // zero when the advisory is not withdrawn
	Aliases     []string  // other identifiers (CVE, GHSA)
	Severity    Severity  // derived from the CVSS vector; SeverityNone without one
	CVSS        string    // raw CVSS vector string, may be empty

	Versions VersionInfo
	Affected *Affected // nil when the record has no [affected] section
}

// VersionInfo lists the version requirements that bound an advisory.
type VersionInfo struct {
	Patched    []string // requirements matching fixed versions
	Unaffected []string // requirements matching versions never affected
}

// Affected narrows an advisory to platforms and functions.
type Affected struct {
	Arch      []Arch
	OS        []OS
	Functions []Function // affected function paths with their version bounds
}

// Function is one affected function path and the version requirements under
// which it is affected.
type Function struct {
	Path     string
	Versions []string
}

// IsWithdrawn reports whether the advisory has been withdrawn.
func (a *Advisory) IsWithdrawn() bool { return !a.Withdrawn.IsZero() }

// AffectsVersion reports whether the given package version falls under this
// advisory: not matched by any patched requirement and not matched by any
// unaffected requirement. Unparseable versions or requirements count as
// affected, erring on the side of reporting.
func (a *Advisory) AffectsVersion(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return true
	}
	for _, req := range a.Versions.Patched {
		if c, err := semver.NewConstraint(req); err == nil && c.Check(v) {
			return false
		}
	}
	for _, req := range a.Versions.Unaffected {
		if c, err := semver.NewConstraint(req); err == nil && c.Check(v) {
			return false
		}
	}
	return true
}
