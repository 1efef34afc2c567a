// backend/src/parsers/market/value.go
package market

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValue normalizes a pasted market value into millions. Accepts a
// decimal comma and a trailing "M" or "K" suffix in either case: "1,5M" is
// 1.5 and "500K" is 0.5. Empty input yields 0 with no error. A non-empty
// string that does not contain a number is rejected instead of letting NaN
// leak into downstream sums.
func ParseValue(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, nil
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	lower := strings.ToLower(cleaned)

	numeric := strings.TrimRight(lower, "mk.")
	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, fmt.Errorf("market: unparseable value %q", s)
	}

	if strings.Contains(lower, "k") {
		return value / 1000, nil
	}
	return value, nil
}

// parseValueOrSkip is the lenient form used inside the line parsers: any
// parse failure is treated as an unparseable line, reported via ok.
func parseValueOrSkip(s string) (float64, bool) {
	v, err := ParseValue(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
