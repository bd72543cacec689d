package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Issue is one model-reported problem with a scene, in the shape the
// validation prompt asks for.
type Issue struct {
	SceneNumber int      `json:"scene_number"`
	IssueType   string   `json:"issue_type"`
	Description string   `json:"description"`
	Location    string   `json:"location,omitempty"`
	Severity    string   `json:"severity"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Frame is one storyboard frame in the shape the storyboard prompt asks for.
type Frame struct {
	SceneNumber    int      `json:"scene_number"`
	Description    string   `json:"description"`
	CameraAngle    string   `json:"camera_angle,omitempty"`
	CameraMovement string   `json:"camera_movement,omitempty"`
	Characters     []string `json:"characters,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// StripFences removes a surrounding markdown code fence. Models sometimes
// wrap JSON output in ```json blocks even when asked not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag on the opening fence line
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractJSON cuts the first complete JSON array or object out of the
// response text.
func extractJSON(s string) (string, error) {
	s = StripFences(s)

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return "", fmt.Errorf("no JSON payload in response")
	}

	open := s[start]
	var closing byte = ']'
	if open == '{' {
		closing = '}'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unterminated JSON payload in response")
}

// ParseIssues decodes the validation response. A top-level array and an
// object with an "issues" field are both accepted.
func ParseIssues(response string) ([]Issue, error) {
	payload, err := extractJSON(response)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	if err := json.Unmarshal([]byte(payload), &issues); err == nil {
		return issues, nil
	}

	var wrapped struct {
		Issues []Issue `json:"issues"`
	}
	if err := json.Unmarshal([]byte(payload), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode issues: %w", err)
	}
	return wrapped.Issues, nil
}

// ParseFrames decodes the storyboard response. A top-level array and an
// object with a "frames" field are both accepted.
func ParseFrames(response string) ([]Frame, error) {
	payload, err := extractJSON(response)
	if err != nil {
		return nil, err
	}

	var frames []Frame
	if err := json.Unmarshal([]byte(payload), &frames); err == nil {
		return frames, nil
	}

	var wrapped struct {
		Frames []Frame `json:"frames"`
	}
	if err := json.Unmarshal([]byte(payload), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode frames: %w", err)
	}
	return wrapped.Frames, nil
}
