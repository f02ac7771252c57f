package metadata

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// FromManifest runs `cargo metadata` against the given manifest and returns
// the decoded snapshot. The cargo binary must be on PATH.
func FromManifest(ctx context.Context, manifestPath string) (*Snapshot, error) {
	cmd := exec.CommandContext(ctx, "cargo", "metadata",
		"--format-version", "1",
		"--manifest-path", manifestPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("cargo metadata: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("cargo metadata: %w", err)
	}

	s, err := Load(&stdout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, err)
	}
	return s, nil
}
