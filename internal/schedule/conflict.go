package schedule

import (
	"fmt"
	"strings"
)

// Rule decides when a new booking collides with an existing one.
type Rule string

const (
	// RuleOverlap rejects any intersection of the two service windows.
	RuleOverlap Rule = "overlap"
	// RuleExact only rejects identical start instants.
	RuleExact Rule = "exact"
)

func ParseRule(s string) (Rule, error) {
	switch Rule(strings.ToLower(strings.TrimSpace(s))) {
	case "", RuleOverlap:
		return RuleOverlap, nil
	case RuleExact:
		return RuleExact, nil
	default:
		return "", fmt.Errorf("unknown conflict rule %q (expected overlap or exact)", s)
	}
}

// Conflicts reports whether candidate collides with any of existing under rule.
func Conflicts(rule Rule, candidate Interval, existing []Interval) bool {
	for _, e := range existing {
		if rule == RuleExact {
			if e.Start.Equal(candidate.Start) {
				return true
			}
			continue
		}
		if Overlaps(candidate, e) {
			return true
		}
	}
	return false
}
