// Package coursecode normalizes course codes so codes fetched from the
// catalog, stored in the cache, and supplied by students compare equal
// regardless of casing and spacing.
package coursecode

import (
	"regexp"
	"strings"
)

// codePattern splits a code into its department prefix and number suffix,
// e.g. "CMPT 225" or "ENGL 199W".
var codePattern = regexp.MustCompile(`^([A-Z]+)\s*([0-9]+[A-Z]?)$`)

// Normalize returns the canonical comparison form of a course code:
// uppercase, single-spaced, with exactly one space between department and
// number. Codes that do not match the department-then-number shape are
// returned uppercased and whitespace-collapsed.
func Normalize(code string) string {
	c := strings.ToUpper(strings.Join(strings.Fields(code), " "))
	if m := codePattern.FindStringSubmatch(c); m != nil {
		return m[1] + " " + m[2]
	}
	return c
}

// NormalizeAll normalizes a list of codes, preserving order.
func NormalizeAll(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = Normalize(c)
	}
	return out
}
