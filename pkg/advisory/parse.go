package advisory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	fenceOpen  = "```toml"
	fenceClose = "```"
)

// frontMatter mirrors the TOML block at the top of an advisory record.
// Dates are quoted strings in the upstream database ("2021-01-08").
type frontMatter struct {
	Advisory struct {
		ID        string   `toml:"id"`
		Package   string   `toml:"package"`
		Date      string   `toml:"date"`
		URL       string   `toml:"url"`
		CVSS      string   `toml:"cvss"`
		Aliases   []string `toml:"aliases"`
		Withdrawn string   `toml:"withdrawn"`
	} `toml:"advisory"`
	Versions struct {
		Patched    []string `toml:"patched"`
		Unaffected []string `toml:"unaffected"`
	} `toml:"versions"`
	Affected *struct {
		Arch      []string            `toml:"arch"`
		OS        []string            `toml:"os"`
		Functions map[string][]string `toml:"functions"`
	} `toml:"affected"`
}

// parseRecord parses one advisory record: a TOML front matter block fenced
// with ```toml, followed by a Markdown body whose first heading is the title.
func parseRecord(data string) (*Advisory, error) {
	front, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if err := toml.Unmarshal([]byte(front), &fm); err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}
	if fm.Advisory.ID == "" {
		return nil, fmt.Errorf("record has no advisory id")
	}
	if fm.Advisory.Package == "" {
		return nil, fmt.Errorf("advisory %s has no package", fm.Advisory.ID)
	}

	adv := &Advisory{
		ID:       fm.Advisory.ID,
		Package:  fm.Advisory.Package,
		URL:      fm.Advisory.URL,
		Aliases:  fm.Advisory.Aliases,
		CVSS:     fm.Advisory.CVSS,
		Severity: severityFromCVSS(fm.Advisory.CVSS),
		Versions: VersionInfo{
			Patched:    fm.Versions.Patched,
			Unaffected: fm.Versions.Unaffected,
		},
	}

	if adv.Date, err = parseDate(fm.Advisory.Date); err != nil {
		return nil, fmt.Errorf("advisory %s: date: %w", adv.ID, err)
	}
	if fm.Advisory.Withdrawn != "" {
		if adv.Withdrawn, err = parseDate(fm.Advisory.Withdrawn); err != nil {
			return nil, fmt.Errorf("advisory %s: withdrawn: %w", adv.ID, err)
		}
	}

	if fm.Affected != nil {
		aff := &Affected{}
		for _, a := range fm.Affected.Arch {
			aff.Arch = append(aff.Arch, Arch(a))
		}
		for _, o := range fm.Affected.OS {
			aff.OS = append(aff.OS, OS(o))
		}
		// Deterministic function order; TOML tables are unordered maps.
		paths := make([]string, 0, len(fm.Affected.Functions))
		for p := range fm.Affected.Functions {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			aff.Functions = append(aff.Functions, Function{Path: p, Versions: fm.Affected.Functions[p]})
		}
		adv.Affected = aff
	}

	adv.Title, adv.Description = splitBody(body)
	return adv, nil
}

// parseDate parses a date-only field. The instant is pinned to midnight UTC;
// the source data carries no time of day.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func splitFrontMatter(data string) (front, body string, err error) {
	rest, ok := strings.CutPrefix(strings.TrimLeft(data, "\uFEFF \t\r\n"), fenceOpen)
	if !ok {
		return "", "", fmt.Errorf("record does not start with %s fence", fenceOpen)
	}
	front, body, ok = strings.Cut(rest, "\n"+fenceClose)
	if !ok {
		return "", "", fmt.Errorf("unterminated %s fence", fenceOpen)
	}
	return front, body, nil
}

func splitBody(body string) (title, description string) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			description = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return title, description
		}
	}
	return "", strings.TrimSpace(body)
}
