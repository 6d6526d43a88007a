package formatting

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var bytesPattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// exponent of 1024 per unit; a bare number is bytes.
var byteUnits = map[string]int{
	"":   0,
	"B":  0,
	"KB": 1,
	"MB": 2,
	"GB": 3,
	"TB": 4,
}

// ParseBytes parses a human-readable byte size such as "25MB" into a byte
// count using base-1024 units. Unit matching is case-insensitive.
func ParseBytes(s string) (int64, error) {
	matches := bytesPattern.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	exp, ok := byteUnits[strings.ToUpper(matches[2])]
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", matches[2])
	}

	return int64(value * math.Pow(1024, float64(exp))), nil
}
