package domain

import (
	"regexp"
	"strings"
)

var (
	featRe = regexp.MustCompile(`^feat(\(.+\))?:`)
	fixRe  = regexp.MustCompile(`^(fix|docs|style|refactor|test|chore)(\(.+\))?:`)
)

// ClassifyCommits derives a bump type from conventional-commit subject
// lines. Classification is an aggregate over the whole history: each line
// sets at most one flag (breaking, feature or fix, checked in that order)
// and the flags resolve with precedence breaking > feature > fix. A history
// with no matching lines, or no lines at all, defaults to a patch bump.
func ClassifyCommits(subjects []string) BumpType {
	var breaking, feature, fix bool

	for _, subject := range subjects {
		switch {
		case strings.Contains(subject, "BREAKING CHANGE") || strings.Contains(subject, "!:"):
			breaking = true
		case featRe.MatchString(subject):
			feature = true
		case fixRe.MatchString(subject):
			fix = true
		}
	}

	switch {
	case breaking:
		return BumpMajor
	case feature:
		return BumpMinor
	case fix:
		return BumpPatch
	default:
		return BumpPatch
	}
}
