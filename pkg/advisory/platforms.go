package advisory

import (
	"fmt"
	"slices"
	"strings"
)

// Arch is a target CPU architecture from the platform enumeration used by
// advisory records. The zero value matches any architecture.
type Arch string

// OS is a target operating system from the platform enumeration used by
// advisory records. The zero value matches any operating system.
type OS string

var knownArches = []Arch{
	"aarch64", "arm", "asmjs", "mips", "mips64", "msp430", "nvptx64",
	"powerpc", "powerpc64", "riscv", "s390x", "sparc", "sparc64",
	"wasm32", "x86", "x86_64",
}

var knownOSes = []OS{
	"android", "cuda", "dragonfly", "emscripten", "freebsd", "fuchsia",
	"haiku", "hermit", "illumos", "ios", "linux", "macos", "netbsd",
	"openbsd", "redox", "solaris", "tvos", "vxworks", "wasi", "windows",
}

// ParseArch validates an architecture name against the platform enumeration.
// Matching is exact apart from surrounding whitespace.
func ParseArch(s string) (Arch, error) {
	a := Arch(strings.TrimSpace(s))
	if !slices.Contains(knownArches, a) {
		return "", fmt.Errorf("unknown architecture %q", s)
	}
	return a, nil
}

// ParseOS validates an operating-system name against the platform enumeration.
// Matching is exact apart from surrounding whitespace.
func ParseOS(s string) (OS, error) {
	o := OS(strings.TrimSpace(s))
	if !slices.Contains(knownOSes, o) {
		return "", fmt.Errorf("unknown operating system %q", s)
	}
	return o, nil
}
