package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenescope/scenescope/internal/findings"
	"github.com/scenescope/scenescope/internal/script"
)

func TestToSarif(t *testing.T) {
	doc := &script.Document{
		Source: "episode.fountain",
		Format: script.FormatFountain,
		Scenes: []script.Scene{
			{Index: 1, Heading: "INT. KITCHEN - NIGHT", StartLine: 1},
			{Index: 2, Heading: "EXT. YARD - DAY", StartLine: 12},
			{Index: 3, Heading: "INT. BARN - NIGHT", StartLine: 30},
		},
	}

	builder := NewBuilder("scenescope", "1.2.3", SourceInfo{Path: doc.Source, Format: doc.Format, SceneCount: 3})
	builder.AddAll([]findings.Finding{
		{SceneIndex: 1, RuleID: "empty_scene_body", Severity: "high", Message: "empty scene"},
		{SceneIndex: 2, RuleID: "time_jump", Severity: "low", Message: "time jump", Location: "EXT. YARD - DAY"},
		{SceneIndex: 3, RuleID: "missing_time_of_day", Severity: "medium", Message: "no time of day"},
	})
	rep := builder.Build()

	sarifReport, err := rep.ToSarif(doc)
	require.NoError(t, err)
	require.Len(t, sarifReport.Runs, 1)

	run := sarifReport.Runs[0]
	assert.Equal(t, "scenescope", run.Tool.Driver.Name)
	require.NotNil(t, run.Tool.Driver.SemanticVersion)
	assert.Equal(t, "1.2.3", *run.Tool.Driver.SemanticVersion)

	require.Len(t, run.Results, 3)

	// findings are already severity ordered: high, medium, low
	levels := []string{}
	for _, result := range run.Results {
		require.NotNil(t, result.Level)
		levels = append(levels, *result.Level)
	}
	assert.Equal(t, []string{"error", "warning", "note"}, levels)

	// locations point at the scene heading lines
	first := run.Results[0]
	require.Len(t, first.Locations, 1)
	region := first.Locations[0].PhysicalLocation.Region
	require.NotNil(t, region.StartLine)
	assert.Equal(t, 1, *region.StartLine)

	last := run.Results[2]
	region = last.Locations[0].PhysicalLocation.Region
	require.NotNil(t, region.StartLine)
	assert.Equal(t, 12, *region.StartLine)

	// location detail is folded into the message
	assert.Contains(t, *last.Message.Text, "EXT. YARD - DAY")
}

func TestToSarifWithoutDocument(t *testing.T) {
	builder := NewBuilder("scenescope", "", testSource())
	builder.Add(findings.Finding{SceneIndex: 2, RuleID: "r", Severity: "medium", Message: "m"})
	rep := builder.Build()

	sarifReport, err := rep.ToSarif(nil)
	require.NoError(t, err)

	result := sarifReport.Runs[0].Results[0]
	region := result.Locations[0].PhysicalLocation.Region
	require.NotNil(t, region.StartLine)
	assert.Equal(t, 1, *region.StartLine)
	assert.Nil(t, sarifReport.Runs[0].Tool.Driver.SemanticVersion)
}
