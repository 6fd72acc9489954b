package provider

import (
	"strconv"
	"strings"
)

// ParseNumber coerces raw cell text to a float64.
//
// Sports-reference cells hold plain decimals ("20.5"), bare fractions
// (".485"), or nothing at all for players without a single attempt.
//
// Returns the parsed value, and ok=false if the text is empty or not a
// number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
