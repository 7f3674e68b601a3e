package scoring

import (
	"strings"
)

// rejectPrefix marks an answer pattern as a reject list: the submission is
// correct as long as it is non-empty and NOT one of the listed answers.
const rejectPrefix = "!reject:"

// Normalize canonicalizes an answer string for comparison: leading and
// trailing whitespace is trimmed, internal whitespace runs collapse to a
// single space, and the result is lowercased.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// IsCorrect reports whether a submitted answer matches the stored pattern.
//
// A pattern takes one of three mutually exclusive forms, checked in order:
//  1. "!reject:a|b|c" is correct iff the submission is non-empty and not listed
//  2. "a|b|c" requires the submission to equal one of the alternatives
//  3. "a" requires an exact match
//
// All comparisons happen on normalized strings. An empty normalized
// submission is never correct.
func IsCorrect(submitted, pattern string) bool {
	normalized := Normalize(submitted)
	if normalized == "" {
		return false
	}

	if rest, ok := strings.CutPrefix(pattern, rejectPrefix); ok {
		for _, rejected := range strings.Split(rest, "|") {
			if Normalize(rejected) == normalized {
				return false
			}
		}
		return true
	}

	if strings.Contains(pattern, "|") {
		for _, candidate := range strings.Split(pattern, "|") {
			if Normalize(candidate) == normalized {
				return true
			}
		}
		return false
	}

	return normalized == Normalize(pattern)
}
