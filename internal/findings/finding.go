package findings

import "strings"

// Severity levels, ordered from most to least severe.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Finding is the internal domain model for one reported observation tied
// to a scene. SceneIndex 0 marks a finding about the document as a whole
// rather than a single scene.
type Finding struct {
	SceneIndex  int      `json:"scene_index"`
	RuleID      string   `json:"rule_id"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	Location    string   `json:"location,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Analyzer    string   `json:"analyzer,omitempty"`
}

// severityOrder maps severities to their sort rank.
var severityOrder = map[string]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// SeverityRank returns the sort rank for a severity. Unknown severities
// sort last.
func SeverityRank(severity string) int {
	if rank, ok := severityOrder[strings.ToLower(severity)]; ok {
		return rank
	}
	return len(severityOrder)
}

// NormalizeSeverity coerces free-form severity text into one of the known
// levels, defaulting to medium.
func NormalizeSeverity(severity string) string {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case SeverityHigh, "error", "critical":
		return SeverityHigh
	case SeverityLow, "note", "info":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// SarifLevel maps a severity to its SARIF result level.
func SarifLevel(severity string) string {
	switch NormalizeSeverity(severity) {
	case SeverityHigh:
		return "error"
	case SeverityLow:
		return "note"
	default:
		return "warning"
	}
}
