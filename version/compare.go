package version

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// semver parses "v1.2.3", "1.2" or "1.2.3-rc.1" into major, minor, patch.
// Pre-release and build suffixes are ignored.
func semver(s string) ([3]int, error) {
	var parts [3]int

	core, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), "-")
	core, _, _ = strings.Cut(core, "+")

	fields := strings.Split(core, ".")
	if len(fields) > len(parts) {
		return parts, fmt.Errorf("invalid version %q", s)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return parts, fmt.Errorf("invalid version %q", s)
		}
		parts[i] = n
	}

	return parts, nil
}

// Compare returns 1 when a is newer than b, -1 when it is older and 0 when
// both name the same release.
func Compare(a, b string) (int, error) {
	av, err := semver(a)
	if err != nil {
		return 0, err
	}

	bv, err := semver(b)
	if err != nil {
		return 0, err
	}

	return slices.Compare(av[:], bv[:]), nil
}
