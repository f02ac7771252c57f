package geiger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Client answers unsafe-usage lookups from a single scan of a dependency
// tree. Construct one with [NewClient] or, for canned data, [NewClientFromReport].
type Client struct {
	usage map[nameVersion]Unsafety
}

type nameVersion struct {
	name    string
	version string
}

// NewClient runs `cargo geiger` against the given manifest and indexes the
// report. The scan compiles the whole tree; expect it to take a while. The
// cargo-geiger binary must be installed.
func NewClient(ctx context.Context, manifestPath string) (*Client, error) {
	cmd := exec.CommandContext(ctx, "cargo", "geiger",
		"--output-format", "Json",
		"--quiet",
		"--manifest-path", manifestPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// cargo-geiger exits non-zero when any scanned crate contains unsafe
	// code; the report on stdout is still complete. Only treat the run as
	// failed when there is nothing to parse.
	if err := cmd.Run(); err != nil && stdout.Len() == 0 {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("cargo geiger: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("cargo geiger: %w", err)
	}

	return NewClientFromReport(&stdout)
}

// NewClientFromReport indexes an already-produced cargo-geiger JSON report.
func NewClientFromReport(r io.Reader) (*Client, error) {
	report, err := parseReport(r)
	if err != nil {
		return nil, err
	}

	usage := make(map[nameVersion]Unsafety, len(report.Packages))
	for _, p := range report.Packages {
		key := nameVersion{name: p.Package.ID.Name, version: p.Package.ID.Version}
		usage[key] = p.Unsafety
	}
	return &Client{usage: usage}, nil
}

// Usage returns the unsafe-usage record for a package version. The second
// return value is false when the scan produced no data for that package.
func (c *Client) Usage(name, version string) (Unsafety, bool) {
	u, ok := c.usage[nameVersion{name: name, version: version}]
	return u, ok
}

// Len returns the number of packages with usage data.
func (c *Client) Len() int { return len(c.usage) }

type report struct {
	Packages []struct {
		Package struct {
			ID struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"id"`
		} `json:"package"`
		Unsafety Unsafety `json:"unsafety"`
	} `json:"packages"`
}

func parseReport(r io.Reader) (*report, error) {
	var rep report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode geiger report: %w", err)
	}
	return &rep, nil
}
