package main

import (
	"fmt"
	"strings"

	"github.com/scenescope/scenescope/internal/findings"
	"github.com/scenescope/scenescope/internal/script"
)

const analyzerName = "lint"

// runRules applies every lint rule to the document. Strict mode raises the
// severity of structural findings from medium to high.
func runRules(doc *script.Document, strict bool) []findings.Finding {
	list := []findings.Finding{}

	if doc.SceneCount() == 0 {
		list = append(list, findings.Finding{
			SceneIndex:  0,
			RuleID:      "empty_content",
			Severity:    findings.SeverityHigh,
			Message:     "The script content is empty",
			Location:    "entire file",
			Suggestions: []string{"Add content to the script file"},
			Analyzer:    analyzerName,
		})
		return list
	}

	list = append(list, structureRules(doc, strict)...)
	list = append(list, continuityRules(doc)...)
	list = append(list, characterRules(doc)...)

	return list
}

// structureRules checks each scene for missing heading parts and empty bodies.
func structureRules(doc *script.Document, strict bool) []findings.Finding {
	var list []findings.Finding

	severity := findings.SeverityMedium
	if strict {
		severity = findings.SeverityHigh
	}

	for _, scene := range doc.Scenes {
		if strings.TrimSpace(scene.Body) == "" {
			list = append(list, findings.Finding{
				SceneIndex:  scene.Index,
				RuleID:      "empty_scene_body",
				Severity:    severity,
				Message:     fmt.Sprintf("Scene %d has a heading but no content", scene.Index),
				Location:    scene.Heading,
				Suggestions: []string{"Add action or dialogue to the scene", "Remove the scene if it is unused"},
				Analyzer:    analyzerName,
			})
		}

		if doc.Format != script.FormatFountain {
			continue
		}

		if scene.Location == "" {
			list = append(list, findings.Finding{
				SceneIndex:  scene.Index,
				RuleID:      "missing_location",
				Severity:    findings.SeverityMedium,
				Message:     fmt.Sprintf("Scene %d heading has no location", scene.Index),
				Location:    scene.Heading,
				Suggestions: []string{"Add a location after the INT./EXT. marker"},
				Analyzer:    analyzerName,
			})
		}
		if scene.TimeOfDay == "" {
			list = append(list, findings.Finding{
				SceneIndex:  scene.Index,
				RuleID:      "missing_time_of_day",
				Severity:    findings.SeverityMedium,
				Message:     fmt.Sprintf("Scene %d heading has no time of day", scene.Index),
				Location:    scene.Heading,
				Suggestions: []string{"Append a time of day to the heading, e.g. \" - NIGHT\""},
				Analyzer:    analyzerName,
			})
		}
	}

	return list
}

// continuityRules flags suspicious transitions between adjacent scenes.
func continuityRules(doc *script.Document) []findings.Finding {
	var list []findings.Finding

	for i := 1; i < len(doc.Scenes); i++ {
		prev, curr := doc.Scenes[i-1], doc.Scenes[i]

		if curr.Heading != "" && strings.EqualFold(curr.Heading, prev.Heading) {
			list = append(list, findings.Finding{
				SceneIndex:  curr.Index,
				RuleID:      "duplicate_scene_heading",
				Severity:    findings.SeverityLow,
				Message:     fmt.Sprintf("Scene %d repeats the heading of scene %d", curr.Index, prev.Index),
				Location:    curr.Heading,
				Suggestions: []string{"Merge the scenes or give the second one a distinct heading"},
				Analyzer:    analyzerName,
			})
		}

		if curr.Location != "" && strings.EqualFold(curr.Location, prev.Location) &&
			curr.TimeOfDay != "" && prev.TimeOfDay != "" &&
			!strings.EqualFold(curr.TimeOfDay, prev.TimeOfDay) {
			list = append(list, findings.Finding{
				SceneIndex: curr.Index,
				RuleID:     "time_jump",
				Severity:   findings.SeverityLow,
				Message: fmt.Sprintf("Scene %d stays in %s but jumps from %s to %s",
					curr.Index, curr.Location, prev.TimeOfDay, curr.TimeOfDay),
				Location:    curr.Heading,
				Suggestions: []string{"Confirm the time jump is intentional", "Add a transition or an establishing scene"},
				Analyzer:    analyzerName,
			})
		}
	}

	return list
}

// characterRules flags character names that look like variants of each
// other, e.g. "DR. SMITH" in one scene and "SMITH" in another.
func characterRules(doc *script.Document) []findings.Finding {
	var list []findings.Finding

	firstSeen := map[string]int{} // normalized name -> scene index
	var order []string
	for _, scene := range doc.Scenes {
		for _, name := range scene.Characters {
			normalized := strings.ToUpper(strings.TrimSpace(name))
			if _, ok := firstSeen[normalized]; !ok {
				firstSeen[normalized] = scene.Index
				order = append(order, normalized)
			}
		}
	}

	reported := map[string]bool{}
	for i, a := range order {
		for _, b := range order[i+1:] {
			if a == b || !isNameVariant(a, b) {
				continue
			}
			key := a + "|" + b
			if reported[key] {
				continue
			}
			reported[key] = true
			list = append(list, findings.Finding{
				SceneIndex:  firstSeen[b],
				RuleID:      "character_name_variant",
				Severity:    findings.SeverityLow,
				Message:     fmt.Sprintf("Characters %q and %q may be the same person under different names", a, b),
				Location:    fmt.Sprintf("first appearances in scenes %d and %d", firstSeen[a], firstSeen[b]),
				Suggestions: []string{"Use one canonical name for the character throughout the script"},
				Analyzer:    analyzerName,
			})
		}
	}

	return list
}

// isNameVariant reports whether one name is a word-boundary suffix or
// prefix of the other.
func isNameVariant(a, b string) bool {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if shorter == "" {
		return false
	}
	return strings.HasPrefix(longer, shorter+" ") || strings.HasSuffix(longer, " "+shorter)
}
