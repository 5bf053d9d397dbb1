package models

import "fmt"

// Severity is the harm level assigned to a flag or an analysis.
// Levels are totally ordered: none < low < medium < high < critical.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the position of s in the severity order. Unknown values rank
// below none.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// GreaterThan reports whether s is strictly more severe than other.
func (s Severity) GreaterThan(other Severity) bool {
	return s.Rank() > other.Rank()
}

// ParseSeverity validates a severity string coming from config or an admin
// request.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if _, ok := severityRank[sev]; !ok || sev == SeverityNone {
		return "", fmt.Errorf("invalid severity %q", s)
	}
	return sev, nil
}
