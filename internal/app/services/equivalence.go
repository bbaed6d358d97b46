package services

import "github.com/oakkaya/degreeplan/internal/pkg/coursecode"

// equivalenceGroups lists courses that satisfy the same degree requirement:
// completing any member satisfies the whole group. Groups are expected to be
// disjoint; a code appearing twice behaves as the union of its groups.
var equivalenceGroups = [][]string{
	{"MATH 150", "MATH 151", "MATH 154", "MATH 157"},
	{"MATH 152", "MATH 155", "MATH 158"},
	{"CMPT 120", "CMPT 128", "CMPT 130"},
	{"CMPT 125", "CMPT 129", "CMPT 135"},
	{"STAT 270", "STAT 271"},
	{"PHYS 120", "PHYS 125", "PHYS 140"},
	{"PHYS 121", "PHYS 126", "PHYS 141"},
}

// ExpandTaken converts a completed-course list into the normalized set of
// satisfied codes: for each equivalence group touched by the list, the whole
// group is added. Pure function of its input.
func ExpandTaken(completed []string) map[string]bool {
	taken := make(map[string]bool, len(completed))
	for _, c := range completed {
		taken[coursecode.Normalize(c)] = true
	}

	for _, group := range equivalenceGroups {
		matched := false
		for _, member := range group {
			if taken[coursecode.Normalize(member)] {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for _, member := range group {
			taken[coursecode.Normalize(member)] = true
		}
	}
	return taken
}

// FilterTaken removes already-satisfied courses from a ranked desired list,
// preserving order and display forms.
func FilterTaken(desired []string, taken map[string]bool) []string {
	remaining := make([]string, 0, len(desired))
	for _, d := range desired {
		if !taken[coursecode.Normalize(d)] {
			remaining = append(remaining, d)
		}
	}
	return remaining
}
