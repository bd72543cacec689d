package storyboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/google/uuid"

	"github.com/scenescope/scenescope/internal/gemini"
	"github.com/scenescope/scenescope/internal/script"
	"github.com/scenescope/scenescope/pkg/shared/config"
)

// Frame is one storyboard panel tied to a scene.
type Frame struct {
	SceneIndex     int      `json:"scene_index"`
	Label          string   `json:"label"`
	Description    string   `json:"description"`
	CameraAngle    string   `json:"camera_angle"`
	CameraMovement string   `json:"camera_movement"`
	Characters     []string `json:"characters,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Image          *Image   `json:"image,omitempty"`
}

// Image is placeholder artwork metadata for a frame. Actual synthesis is
// out of scope; the metadata records what a renderer should produce.
type Image struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Prompt string `json:"prompt"`
}

// Board is a complete storyboard for one script.
type Board struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Frames    []Frame   `json:"frames"`
}

// Defaults carries the per-frame fallbacks from the advanced configuration.
type Defaults struct {
	CameraAngle    string
	CameraMovement string
	LabelTemplate  string
	GenerateImages bool
	ImageWidth     int
	ImageHeight    int
}

// DefaultsFromConfig resolves frame defaults from the configuration.
func DefaultsFromConfig(cfg *config.Config) Defaults {
	d := Defaults{
		CameraAngle:    cfg.Advanced.DefaultCameraAngle,
		CameraMovement: cfg.Advanced.DefaultCameraMovement,
		LabelTemplate:  cfg.Advanced.SceneLabelTemplate,
		GenerateImages: config.GetBoolValue(cfg, "Generation.GenerateImages", false),
		ImageWidth:     cfg.Generation.ImageWidth,
		ImageHeight:    cfg.Generation.ImageHeight,
	}
	if d.CameraAngle == "" {
		d.CameraAngle = config.DefaultCameraAngle
	}
	if d.CameraMovement == "" {
		d.CameraMovement = config.DefaultCameraMovement
	}
	if d.LabelTemplate == "" {
		d.LabelTemplate = config.DefaultSceneLabelTemplate
	}
	if d.ImageWidth <= 0 {
		d.ImageWidth = config.DefaultImageWidth
	}
	if d.ImageHeight <= 0 {
		d.ImageHeight = config.DefaultImageHeight
	}
	return d
}

// Build assembles a board from the parsed document and the model's frame
// suggestions. Every scene gets exactly one frame; suggestions referencing
// unknown scenes are ignored, scenes without a suggestion get a frame
// derived from the scene itself.
func Build(doc *script.Document, suggested []gemini.Frame, defaults Defaults) (*Board, error) {
	labelTmpl, err := texttemplate.New("label").Parse(defaults.LabelTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid scene label template: %w", err)
	}

	bySceneIndex := map[int]gemini.Frame{}
	for _, f := range suggested {
		if f.SceneNumber >= 1 && f.SceneNumber <= len(doc.Scenes) {
			bySceneIndex[f.SceneNumber] = f
		}
	}

	board := &Board{
		ID:        uuid.New().String(),
		Source:    doc.Source,
		Title:     boardTitle(doc),
		CreatedAt: time.Now().UTC(),
	}

	for _, scene := range doc.Scenes {
		frame := Frame{
			SceneIndex:     scene.Index,
			CameraAngle:    defaults.CameraAngle,
			CameraMovement: defaults.CameraMovement,
			Characters:     scene.Characters,
			Description:    sceneSummary(scene),
		}

		if s, ok := bySceneIndex[scene.Index]; ok {
			if strings.TrimSpace(s.Description) != "" {
				frame.Description = strings.TrimSpace(s.Description)
			}
			if s.CameraAngle != "" {
				frame.CameraAngle = s.CameraAngle
			}
			if s.CameraMovement != "" {
				frame.CameraMovement = s.CameraMovement
			}
			if len(s.Characters) > 0 {
				frame.Characters = s.Characters
			}
			frame.Notes = s.Notes
		}

		label, err := renderLabel(labelTmpl, scene)
		if err != nil {
			return nil, err
		}
		frame.Label = label

		if defaults.GenerateImages {
			frame.Image = &Image{
				Width:  defaults.ImageWidth,
				Height: defaults.ImageHeight,
				Prompt: frame.Description,
			}
		}

		board.Frames = append(board.Frames, frame)
	}

	return board, nil
}

func renderLabel(tmpl *texttemplate.Template, scene script.Scene) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, scene); err != nil {
		return "", fmt.Errorf("failed to render scene label: %w", err)
	}
	return buf.String(), nil
}

func boardTitle(doc *script.Document) string {
	if len(doc.Scenes) > 0 && doc.Scenes[0].Heading != "" {
		return doc.Scenes[0].Heading
	}
	return doc.Source
}

// sceneSummary derives a frame description from the scene body when the
// model did not supply one.
func sceneSummary(scene script.Scene) string {
	body := strings.TrimSpace(scene.Body)
	if body == "" {
		return scene.Heading
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return scene.Heading
}

// WriteJSON persists the board to the given path.
func (b *Board) WriteJSON(path string) error {
	data, err := json.MarshalIndent(b, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshaling storyboard: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing storyboard to %q: %w", path, err)
	}
	return nil
}

// ReadBoard loads a board previously written with WriteJSON.
func ReadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading storyboard %q: %w", path, err)
	}
	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("error unmarshaling storyboard %q: %w", path, err)
	}
	return &board, nil
}
