package util

import "strings"

// NormalizeTicker trims surrounding whitespace and upper-cases a ticker symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
