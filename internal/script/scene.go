package script

import (
	"encoding/json"
	"fmt"
	"os"
)

// Supported script formats.
const (
	FormatPlain    = "txt"
	FormatFountain = "fountain"
)

// Scene is one parsed unit of a script, bounded by structural markers in
// the source format. Scenes are immutable once parsed.
type Scene struct {
	Index      int      `json:"index"`
	Heading    string   `json:"heading"`
	Location   string   `json:"location,omitempty"`
	TimeOfDay  string   `json:"time_of_day,omitempty"`
	Body       string   `json:"body"`
	Characters []string `json:"characters,omitempty"`
	StartLine  int      `json:"start_line"`
}

// Document is the ordered result of parsing one script file.
type Document struct {
	Source string  `json:"source"`
	Format string  `json:"format"`
	Scenes []Scene `json:"scenes"`
}

// ParseError is returned when the declared format's structural markers
// cannot be located in the input document.
type ParseError struct {
	File   string
	Format string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q as %s: %s", e.File, e.Format, e.Reason)
}

// SceneCount returns the number of scenes in the document.
func (d *Document) SceneCount() int {
	return len(d.Scenes)
}

// HasScene reports whether the document contains a scene with the given index.
func (d *Document) HasScene(index int) bool {
	return index >= 1 && index <= len(d.Scenes)
}

// WriteJSON persists the document to the given path.
func (d *Document) WriteJSON(path string) error {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshaling scenes: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing scenes to %q: %w", path, err)
	}
	return nil
}

// ReadDocument loads a document previously written with WriteJSON.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenes file %q: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error unmarshaling scenes file %q: %w", path, err)
	}
	return &doc, nil
}
