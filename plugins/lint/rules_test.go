package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenescope/scenescope/internal/findings"
	"github.com/scenescope/scenescope/internal/script"
)

func findingsByRule(list []findings.Finding, ruleID string) []findings.Finding {
	var out []findings.Finding
	for _, f := range list {
		if f.RuleID == ruleID {
			out = append(out, f)
		}
	}
	return out
}

func TestRunRulesEmptyDocument(t *testing.T) {
	doc := &script.Document{Source: "empty.txt", Format: script.FormatPlain}

	list := runRules(doc, false)
	require.Len(t, list, 1)
	assert.Equal(t, "empty_content", list[0].RuleID)
	assert.Equal(t, findings.SeverityHigh, list[0].Severity)
	assert.Equal(t, 0, list[0].SceneIndex)
	assert.Equal(t, "entire file", list[0].Location)
	assert.Equal(t, "lint", list[0].Analyzer)
}

func TestStructureRules(t *testing.T) {
	doc := &script.Document{
		Source: "episode.fountain",
		Format: script.FormatFountain,
		Scenes: []script.Scene{
			{Index: 1, Heading: "INT. KITCHEN - NIGHT", Location: "KITCHEN", TimeOfDay: "NIGHT", Body: "Action."},
			{Index: 2, Heading: "INT. KITCHEN", Location: "KITCHEN", Body: "More action."},
			{Index: 3, Heading: ".MONTAGE", Body: ""},
		},
	}

	list := runRules(doc, false)

	empty := findingsByRule(list, "empty_scene_body")
	require.Len(t, empty, 1)
	assert.Equal(t, 3, empty[0].SceneIndex)
	assert.Equal(t, findings.SeverityMedium, empty[0].Severity)

	missingTime := findingsByRule(list, "missing_time_of_day")
	require.Len(t, missingTime, 2)
	assert.Equal(t, 2, missingTime[0].SceneIndex)
	assert.Equal(t, 3, missingTime[1].SceneIndex)

	missingLocation := findingsByRule(list, "missing_location")
	require.Len(t, missingLocation, 1)
	assert.Equal(t, 3, missingLocation[0].SceneIndex)
}

func TestStructureRulesStrict(t *testing.T) {
	doc := &script.Document{
		Source: "episode.fountain",
		Format: script.FormatFountain,
		Scenes: []script.Scene{
			{Index: 1, Heading: "INT. KITCHEN - NIGHT", Location: "KITCHEN", TimeOfDay: "NIGHT", Body: ""},
		},
	}

	list := runRules(doc, true)
	empty := findingsByRule(list, "empty_scene_body")
	require.Len(t, empty, 1)
	assert.Equal(t, findings.SeverityHigh, empty[0].Severity)

	// strict mode does not touch the heading rules
	assert.Empty(t, findingsByRule(list, "missing_location"))
}

func TestStructureRulesPlainFormat(t *testing.T) {
	doc := &script.Document{
		Source: "story.txt",
		Format: script.FormatPlain,
		Scenes: []script.Scene{
			{Index: 1, Heading: "The opening.", Body: "A quiet street."},
		},
	}

	list := runRules(doc, false)
	// heading rules only apply to fountain scripts
	assert.Empty(t, findingsByRule(list, "missing_location"))
	assert.Empty(t, findingsByRule(list, "missing_time_of_day"))
}

func TestContinuityRulesDuplicateHeading(t *testing.T) {
	doc := &script.Document{
		Format: script.FormatFountain,
		Scenes: []script.Scene{
			{Index: 1, Heading: "INT. KITCHEN - NIGHT", Location: "KITCHEN", TimeOfDay: "NIGHT", Body: "a"},
			{Index: 2, Heading: "int. kitchen - night", Location: "KITCHEN", TimeOfDay: "NIGHT", Body: "b"},
		},
	}

	list := runRules(doc, false)
	dup := findingsByRule(list, "duplicate_scene_heading")
	require.Len(t, dup, 1)
	assert.Equal(t, 2, dup[0].SceneIndex)
	assert.Equal(t, findings.SeverityLow, dup[0].Severity)
}

func TestContinuityRulesTimeJump(t *testing.T) {
	doc := &script.Document{
		Format: script.FormatFountain,
		Scenes: []script.Scene{
			{Index: 1, Heading: "INT. KITCHEN - NIGHT", Location: "KITCHEN", TimeOfDay: "NIGHT", Body: "a"},
			{Index: 2, Heading: "INT. KITCHEN - DAY", Location: "KITCHEN", TimeOfDay: "DAY", Body: "b"},
			{Index: 3, Heading: "EXT. YARD - NIGHT", Location: "YARD", TimeOfDay: "NIGHT", Body: "c"},
		},
	}

	list := runRules(doc, false)
	jumps := findingsByRule(list, "time_jump")
	require.Len(t, jumps, 1)
	assert.Equal(t, 2, jumps[0].SceneIndex)
	assert.Contains(t, jumps[0].Message, "NIGHT")
	assert.Contains(t, jumps[0].Message, "DAY")
}

func TestCharacterRules(t *testing.T) {
	doc := &script.Document{
		Format: script.FormatFountain,
		Scenes: []script.Scene{
			{Index: 1, Heading: "INT. OFFICE - DAY", Location: "OFFICE", TimeOfDay: "DAY", Body: "a", Characters: []string{"DR. SMITH", "MARGOT"}},
			{Index: 2, Heading: "EXT. STREET - DAY", Location: "STREET", TimeOfDay: "DAY", Body: "b", Characters: []string{"SMITH"}},
			{Index: 3, Heading: "INT. OFFICE - NIGHT", Location: "OFFICE", TimeOfDay: "NIGHT", Body: "c", Characters: []string{"SMITH", "MARGOT"}},
		},
	}

	list := runRules(doc, false)
	variants := findingsByRule(list, "character_name_variant")
	require.Len(t, variants, 1)
	assert.Equal(t, 2, variants[0].SceneIndex)
	assert.Contains(t, variants[0].Message, `"DR. SMITH"`)
	assert.Contains(t, variants[0].Message, `"SMITH"`)
}

func TestIsNameVariant(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"DR. SMITH", "SMITH", true},
		{"SMITH", "SMITH JR", true},
		{"MARGOT", "MARGARET", false},
		{"SMITH", "BLACKSMITH", false},
		{"", "SMITH", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isNameVariant(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
