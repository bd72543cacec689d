package storyboard

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenescope/scenescope/internal/gemini"
	"github.com/scenescope/scenescope/internal/script"
)

func testDefaults() Defaults {
	return Defaults{
		CameraAngle:    "medium",
		CameraMovement: "static",
		LabelTemplate:  "Scene {{ .Index }}: {{ .Heading }}",
		ImageWidth:     1280,
		ImageHeight:    720,
	}
}

func testDocument() *script.Document {
	return &script.Document{
		Source: "episode.fountain",
		Format: script.FormatFountain,
		Scenes: []script.Scene{
			{Index: 1, Heading: "INT. KITCHEN - NIGHT", Body: "MARGOT stands at the sink.\n\nMARGOT\nDid you hear that?", Characters: []string{"MARGOT"}, StartLine: 1},
			{Index: 2, Heading: "EXT. CORNFIELD - NIGHT", Body: "", StartLine: 10},
		},
	}
}

func TestBuildWithoutSuggestions(t *testing.T) {
	board, err := Build(testDocument(), nil, testDefaults())
	require.NoError(t, err)

	assert.NotEmpty(t, board.ID)
	assert.Equal(t, "episode.fountain", board.Source)
	assert.Equal(t, "INT. KITCHEN - NIGHT", board.Title)
	require.Len(t, board.Frames, 2)

	first := board.Frames[0]
	assert.Equal(t, 1, first.SceneIndex)
	assert.Equal(t, "Scene 1: INT. KITCHEN - NIGHT", first.Label)
	// description falls back to the first non-empty body line
	assert.Equal(t, "MARGOT stands at the sink.", first.Description)
	assert.Equal(t, "medium", first.CameraAngle)
	assert.Equal(t, "static", first.CameraMovement)
	assert.Equal(t, []string{"MARGOT"}, first.Characters)
	assert.Nil(t, first.Image)

	// an empty scene body falls back to the heading
	assert.Equal(t, "EXT. CORNFIELD - NIGHT", board.Frames[1].Description)
}

func TestBuildMergesSuggestions(t *testing.T) {
	suggested := []gemini.Frame{
		{SceneNumber: 1, Description: "Wide shot of the dark kitchen", CameraAngle: "wide", Characters: []string{"MARGOT", "DANIEL"}, Notes: "low key lighting"},
		{SceneNumber: 7, Description: "This scene does not exist"},
	}

	board, err := Build(testDocument(), suggested, testDefaults())
	require.NoError(t, err)
	require.Len(t, board.Frames, 2)

	first := board.Frames[0]
	assert.Equal(t, "Wide shot of the dark kitchen", first.Description)
	assert.Equal(t, "wide", first.CameraAngle)
	// unset suggestion fields keep the defaults
	assert.Equal(t, "static", first.CameraMovement)
	assert.Equal(t, []string{"MARGOT", "DANIEL"}, first.Characters)
	assert.Equal(t, "low key lighting", first.Notes)

	// the out-of-range suggestion is ignored
	assert.Equal(t, "EXT. CORNFIELD - NIGHT", board.Frames[1].Description)
}

func TestBuildGeneratesImageMetadata(t *testing.T) {
	defaults := testDefaults()
	defaults.GenerateImages = true

	board, err := Build(testDocument(), nil, defaults)
	require.NoError(t, err)

	for _, frame := range board.Frames {
		require.NotNil(t, frame.Image)
		assert.Equal(t, 1280, frame.Image.Width)
		assert.Equal(t, 720, frame.Image.Height)
		assert.Equal(t, frame.Description, frame.Image.Prompt)
	}
}

func TestBuildInvalidLabelTemplate(t *testing.T) {
	defaults := testDefaults()
	defaults.LabelTemplate = "{{ .Index"

	_, err := Build(testDocument(), nil, defaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scene label template")
}

func TestBoardJSONRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	board, err := Build(testDocument(), nil, testDefaults())
	require.NoError(t, err)

	path := filepath.Join(tmpDir, "board.json")
	require.NoError(t, board.WriteJSON(path))

	loaded, err := ReadBoard(path)
	require.NoError(t, err)
	assert.Equal(t, board.ID, loaded.ID)
	assert.Equal(t, board.Title, loaded.Title)
	require.Len(t, loaded.Frames, len(board.Frames))
	assert.Equal(t, board.Frames[0], loaded.Frames[0])
}
