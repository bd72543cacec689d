package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// DetectFormat maps a file extension to a parser format. Screenplay
// extensions get the fountain parser, everything else is plain text.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fountain", ".fdx", ".spmd":
		return FormatFountain
	default:
		return FormatPlain
	}
}

// ParseFile reads a script file and parses it with the declared format.
// An empty format selects the parser by file extension.
func ParseFile(path, format string) (*Document, error) {
	if format == "" {
		format = DetectFormat(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %q: %w", path, err)
	}

	return Parse(path, format, string(data))
}

// Parse parses script content with the declared format. Scene indices in
// the result are unique and strictly increasing from 1. Empty content
// yields an empty scene sequence, not an error.
func Parse(source, format, content string) (*Document, error) {
	doc := &Document{Source: source, Format: format}

	if strings.TrimSpace(content) == "" {
		return doc, nil
	}

	switch format {
	case FormatFountain:
		scenes, err := parseFountain(source, content)
		if err != nil {
			return nil, err
		}
		doc.Scenes = scenes
	case FormatPlain:
		doc.Scenes = parsePlain(content)
	default:
		return nil, &ParseError{File: source, Format: format, Reason: "unknown format"}
	}

	return doc, nil
}

// parseFountain splits screenplay content on INT./EXT. scene headings.
// Content without a single heading is a structural failure.
func parseFountain(source, content string) ([]Scene, error) {
	lines := strings.Split(content, "\n")

	var scenes []Scene
	var current *Scene
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		current.Characters = extractCharacters(body)
		scenes = append(scenes, *current)
		current = nil
		body = nil
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if isSceneHeading(line) {
			flush()
			heading := strings.TrimPrefix(line, ".")
			location, timeOfDay := splitHeading(heading)
			current = &Scene{
				Index:     len(scenes) + 1,
				Heading:   heading,
				Location:  location,
				TimeOfDay: timeOfDay,
				StartLine: i + 1,
			}
			continue
		}
		if current != nil {
			body = append(body, raw)
		}
	}
	flush()

	if len(scenes) == 0 {
		return nil, &ParseError{
			File:   source,
			Format: FormatFountain,
			Reason: "no scene headings (INT./EXT.) found",
		}
	}

	return scenes, nil
}

// parsePlain treats blank-line separated paragraphs as scenes. The first
// line of a paragraph serves as its heading.
func parsePlain(content string) []Scene {
	lines := strings.Split(content, "\n")

	var scenes []Scene
	var block []string
	blockStart := 0

	flush := func() {
		if len(block) == 0 {
			return
		}
		heading := strings.TrimSpace(block[0])
		body := strings.TrimSpace(strings.Join(block, "\n"))
		scenes = append(scenes, Scene{
			Index:      len(scenes) + 1,
			Heading:    heading,
			Body:       body,
			Characters: extractCharacters(block),
			StartLine:  blockStart + 1,
		})
		block = nil
	}

	for i, raw := range lines {
		if strings.TrimSpace(raw) == "" {
			flush()
			continue
		}
		if len(block) == 0 {
			blockStart = i
		}
		block = append(block, raw)
	}
	flush()

	return scenes
}

// isSceneHeading reports whether a trimmed line is a screenplay scene
// heading. Forced headings start with a dot, standard ones with an
// INT/EXT marker.
func isSceneHeading(line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") && len(line) > 1 && line[1] != '.' {
		return true
	}
	upper := strings.ToUpper(line)
	for _, prefix := range []string{"INT.", "EXT.", "INT ", "EXT ", "INT/EXT", "EST.", "I/E"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// splitHeading separates "INT. HOUSE - NIGHT" into location and time of day.
func splitHeading(heading string) (string, string) {
	rest := heading
	for _, prefix := range []string{"INT./EXT.", "INT/EXT", "INT.", "EXT.", "EST.", "I/E", "INT", "EXT"} {
		if strings.HasPrefix(strings.ToUpper(rest), prefix) {
			rest = rest[len(prefix):]
			break
		}
	}
	rest = strings.TrimSpace(rest)

	if idx := strings.LastIndex(rest, " - "); idx >= 0 {
		return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+3:])
	}
	return rest, ""
}

// extractCharacters collects character names from dialogue cues: an
// upper-case line followed by a non-empty line. Parenthetical extensions
// like (V.O.) are stripped. Names are unique and keep first-seen order.
func extractCharacters(lines []string) []string {
	var characters []string
	seen := map[string]bool{}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !isCharacterCue(line) {
			continue
		}
		if i+1 >= len(lines) || strings.TrimSpace(lines[i+1]) == "" {
			continue
		}
		name := line
		if idx := strings.Index(name, "("); idx > 0 {
			name = strings.TrimSpace(name[:idx])
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		characters = append(characters, name)
	}

	return characters
}

// isCharacterCue reports whether a trimmed line looks like a dialogue cue.
func isCharacterCue(line string) bool {
	if line == "" || len(line) > 40 {
		return false
	}
	if isSceneHeading(line) {
		return false
	}
	// transitions like CUT TO: are not cues
	if strings.HasSuffix(line, ":") {
		return false
	}

	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
