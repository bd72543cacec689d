package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/scenescope/scenescope/internal/findings"
	"github.com/scenescope/scenescope/internal/git"
)

// SourceInfo identifies the document a report was produced from.
type SourceInfo struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	SceneCount int    `json:"scene_count"`
}

// Metadata carries the run information attached to every report.
type Metadata struct {
	RunID       string                  `json:"run_id"`
	Tool        string                  `json:"tool"`
	ToolVersion string                  `json:"tool_version"`
	Analyzer    string                  `json:"analyzer,omitempty"`
	StartedAt   time.Time               `json:"started_at"`
	Source      SourceInfo              `json:"source"`
	Repository  *git.RepositoryMetadata `json:"repository,omitempty"`
}

// Report is the terminal artifact of one analysis run. It is written once
// and never mutated after creation.
type Report struct {
	Metadata Metadata           `json:"metadata"`
	Valid    bool               `json:"valid"`
	Summary  string             `json:"summary"`
	Findings []findings.Finding `json:"findings"`
}

// Builder aggregates findings for one run. Findings that reference a scene
// index outside the parsed range are dropped.
type Builder struct {
	metadata Metadata
	findings []findings.Finding
	dropped  int
}

// NewBuilder creates a report builder for the given source.
func NewBuilder(tool, version string, source SourceInfo) *Builder {
	return &Builder{
		metadata: Metadata{
			RunID:       uuid.New().String(),
			Tool:        tool,
			ToolVersion: version,
			StartedAt:   time.Now().UTC(),
			Source:      source,
		},
	}
}

// WithAnalyzer records the analyzer plugin name in the run metadata.
func (b *Builder) WithAnalyzer(name string) *Builder {
	b.metadata.Analyzer = name
	return b
}

// WithRepository attaches git metadata when the script lives in a work tree.
func (b *Builder) WithRepository(md *git.RepositoryMetadata) *Builder {
	b.metadata.Repository = md
	return b
}

// Add appends a finding. SceneIndex 0 marks a document-level finding;
// any other index must name a scene present in the source. Findings
// against a document with no scenes are rejected, so an empty input
// always builds an empty, valid report.
func (b *Builder) Add(f findings.Finding) bool {
	if b.metadata.Source.SceneCount == 0 || f.SceneIndex < 0 || f.SceneIndex > b.metadata.Source.SceneCount {
		b.dropped++
		return false
	}
	f.Severity = findings.NormalizeSeverity(f.Severity)
	b.findings = append(b.findings, f)
	return true
}

// AddAll appends a batch of findings and returns the number dropped.
func (b *Builder) AddAll(list []findings.Finding) int {
	before := b.dropped
	for _, f := range list {
		b.Add(f)
	}
	return b.dropped - before
}

// Dropped returns how many findings were rejected for referencing
// nonexistent scenes.
func (b *Builder) Dropped() int {
	return b.dropped
}

// Build finalizes the report: findings are ordered by severity, then by
// scene index, and the validity flag and summary are computed.
func (b *Builder) Build() *Report {
	ordered := make([]findings.Finding, len(b.findings))
	copy(ordered, b.findings)

	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := findings.SeverityRank(ordered[i].Severity), findings.SeverityRank(ordered[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return ordered[i].SceneIndex < ordered[j].SceneIndex
	})

	r := &Report{
		Metadata: b.metadata,
		Findings: ordered,
	}
	info := r.SeverityInfo()
	r.Valid = info[findings.SeverityHigh] == 0
	r.Summary = summarize(info)
	return r
}

// SeverityInfo collects the number of low, medium and high severity
// findings plus a total.
func (r *Report) SeverityInfo() map[string]int {
	severityInfo := map[string]int{
		findings.SeverityLow:    0,
		findings.SeverityMedium: 0,
		findings.SeverityHigh:   0,
		"total":                 0,
	}

	for _, f := range r.Findings {
		severityInfo[findings.NormalizeSeverity(f.Severity)]++
		severityInfo["total"]++
	}

	return severityInfo
}

func summarize(info map[string]int) string {
	if info["total"] == 0 {
		return "No issues found in the script."
	}
	return fmt.Sprintf("Found %d issues: %d high, %d medium, %d low severity.",
		info["total"], info[findings.SeverityHigh], info[findings.SeverityMedium], info[findings.SeverityLow])
}

// MarshalIndent renders the report as indented JSON.
func (r *Report) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "    ")
}

// WriteJSON persists the report to the given path.
func (r *Report) WriteJSON(path string) error {
	data, err := r.MarshalIndent()
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing report to %q: %w", path, err)
	}
	return nil
}

// ParseReport is the inverse of MarshalIndent. It preserves the count and
// ordering of findings.
func ParseReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("error unmarshaling report: %w", err)
	}
	return &r, nil
}

// ReadReport loads a report from a JSON file.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading report %q: %w", path, err)
	}
	return ParseReport(data)
}
