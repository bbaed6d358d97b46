package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/oakkaya/degreeplan/internal/pkg/apperrors"
)

// Term is one of the three terms in the academic year cycle.
type Term string

const (
	TermSpring Term = "spring"
	TermSummer Term = "summer"
	TermFall   Term = "fall"
)

// termCycle is the chronological order of terms within a year.
var termCycle = [...]Term{TermSpring, TermSummer, TermFall}

// ParseTerm parses a term name. Anything outside the three-term cycle is a
// configuration error and fails fast rather than producing a wrong schedule.
func ParseTerm(s string) (Term, error) {
	t := Term(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range termCycle {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidTerm, s)
}

// TermKey returns the canonical cache key for a (year, term) pair, e.g. "2024-fall".
func TermKey(year int, term Term) string {
	return fmt.Sprintf("%d-%s", year, term)
}

// TermLabel returns the display label for a term, e.g. "Fall 2024".
func TermLabel(year int, term Term) string {
	name := string(term)
	return strings.ToUpper(name[:1]) + name[1:] + " " + fmt.Sprint(year)
}

// NextTerm advances one step through the term cycle, wrapping to spring of the
// following year after fall.
func NextTerm(year int, term Term) (int, Term) {
	for i, t := range termCycle {
		if t != term {
			continue
		}
		if i == len(termCycle)-1 {
			return year + 1, termCycle[0]
		}
		return year, termCycle[i+1]
	}
	// Unreachable for terms produced by ParseTerm; advance the year to keep
	// the horizon walk finite anyway.
	return year + 1, termCycle[0]
}

// CurrentTerm returns the academic term containing the given date.
// January-April is spring, May-August is summer, September-December is fall.
func CurrentTerm(now time.Time) (int, Term) {
	switch m := now.Month(); {
	case m <= time.April:
		return now.Year(), TermSpring
	case m <= time.August:
		return now.Year(), TermSummer
	default:
		return now.Year(), TermFall
	}
}
