package advisory

import (
	"fmt"
	"math"
	"strings"
)

// Severity is a qualitative severity rating, ordered so that ratings compare
// with plain < and >=.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityNone:     "none",
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity converts a severity name to its rating. Matching is
// case-insensitive; unknown names are an error.
func ParseSeverity(s string) (Severity, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for sev, name := range severityNames {
		if name == lower {
			return sev, nil
		}
	}
	return SeverityNone, fmt.Errorf("unknown severity %q", s)
}

// severityFromScore buckets a CVSS base score into a qualitative rating
// using the standard v3.x ranges.
func severityFromScore(score float64) Severity {
	switch {
	case score >= 9.0:
		return SeverityCritical
	case score >= 7.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	case score > 0:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// severityFromCVSS derives a qualitative rating from a CVSS v3.x vector
// string such as "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H".
// Vectors that cannot be scored yield SeverityNone.
func severityFromCVSS(vector string) Severity {
	score, err := cvssBaseScore(vector)
	if err != nil {
		return SeverityNone
	}
	return severityFromScore(score)
}

// cvssBaseScore computes the CVSS v3.x base score from a vector string,
// following the scoring formula of the specification.
func cvssBaseScore(vector string) (float64, error) {
	parts := strings.Split(vector, "/")
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "CVSS:3") {
		return 0, fmt.Errorf("not a CVSS v3 vector: %q", vector)
	}

	metrics := make(map[string]string, len(parts)-1)
	for _, p := range parts[1:] {
		k, v, ok := strings.Cut(p, ":")
		if !ok {
			return 0, fmt.Errorf("malformed metric %q in %q", p, vector)
		}
		metrics[k] = v
	}

	scopeChanged := metrics["S"] == "C"

	av, err := metricWeight("AV", metrics, map[string]float64{"N": 0.85, "A": 0.62, "L": 0.55, "P": 0.2})
	if err != nil {
		return 0, err
	}
	ac, err := metricWeight("AC", metrics, map[string]float64{"L": 0.77, "H": 0.44})
	if err != nil {
		return 0, err
	}
	prWeights := map[string]float64{"N": 0.85, "L": 0.62, "H": 0.27}
	if scopeChanged {
		prWeights = map[string]float64{"N": 0.85, "L": 0.68, "H": 0.5}
	}
	pr, err := metricWeight("PR", metrics, prWeights)
	if err != nil {
		return 0, err
	}
	ui, err := metricWeight("UI", metrics, map[string]float64{"N": 0.85, "R": 0.62})
	if err != nil {
		return 0, err
	}

	impactWeights := map[string]float64{"H": 0.56, "L": 0.22, "N": 0}
	c, err := metricWeight("C", metrics, impactWeights)
	if err != nil {
		return 0, err
	}
	i, err := metricWeight("I", metrics, impactWeights)
	if err != nil {
		return 0, err
	}
	a, err := metricWeight("A", metrics, impactWeights)
	if err != nil {
		return 0, err
	}

	iss := 1 - (1-c)*(1-i)*(1-a)
	var impact float64
	if scopeChanged {
		impact = 7.52*(iss-0.029) - 3.25*math.Pow(iss-0.02, 15)
	} else {
		impact = 6.42 * iss
	}
	if impact <= 0 {
		return 0, nil
	}

	exploitability := 8.22 * av * ac * pr * ui
	score := impact + exploitability
	if scopeChanged {
		score *= 1.08
	}
	return roundUp(min(score, 10)), nil
}

func metricWeight(name string, metrics map[string]string, weights map[string]float64) (float64, error) {
	v, ok := metrics[name]
	if !ok {
		return 0, fmt.Errorf("missing metric %s", name)
	}
	w, ok := weights[v]
	if !ok {
		return 0, fmt.Errorf("invalid %s value %q", name, v)
	}
	return w, nil
}

// roundUp rounds to one decimal place, always upward, as required by the
// CVSS v3.1 specification (appendix A).
func roundUp(x float64) float64 {
	y := math.Round(x * 100000)
	if math.Mod(y, 10000) == 0 {
		return y / 100000
	}
	return (math.Floor(y/10000) + 1) / 10
}
