package inline

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Options struct {
	Out io.Writer
	// Pages is how many feed pages to load. Zero loads until the feed ends.
	Pages int
	Json  bool
	// Playback prints the resolved playback URL instead of the canonical one.
	Playback bool
}

// ParsePages reads the --pages flag: a positive number or "all".
func ParsePages(value string) (int, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "all") {
		return 0, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid page count: %s", value)
	}
	if n < 1 {
		return 0, errors.New("page count must be at least 1")
	}
	return n, nil
}
