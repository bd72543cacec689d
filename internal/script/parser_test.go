package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFountain = `INT. FARMHOUSE KITCHEN - NIGHT

MARGOT stands at the sink, staring out the window.

MARGOT
Did you hear that?

EXT. CORNFIELD - NIGHT

Rows of corn sway in the wind.

DANIEL (V.O.)
It came from the barn.

INT. FARMHOUSE KITCHEN - DAY

MARGOT
It's morning already.
`

func TestParseFountain(t *testing.T) {
	doc, err := Parse("episode.fountain", FormatFountain, sampleFountain)
	require.NoError(t, err)
	require.Equal(t, 3, doc.SceneCount())

	// indices are unique and strictly increasing from 1
	for i, scene := range doc.Scenes {
		assert.Equal(t, i+1, scene.Index)
	}

	first := doc.Scenes[0]
	assert.Equal(t, "INT. FARMHOUSE KITCHEN - NIGHT", first.Heading)
	assert.Equal(t, "FARMHOUSE KITCHEN", first.Location)
	assert.Equal(t, "NIGHT", first.TimeOfDay)
	assert.Equal(t, 1, first.StartLine)
	assert.Equal(t, []string{"MARGOT"}, first.Characters)

	second := doc.Scenes[1]
	assert.Equal(t, "CORNFIELD", second.Location)
	// parenthetical extensions are stripped from character cues
	assert.Equal(t, []string{"DANIEL"}, second.Characters)

	third := doc.Scenes[2]
	assert.Equal(t, "DAY", third.TimeOfDay)
}

func TestParseFountainForcedHeading(t *testing.T) {
	content := ".FLASHBACK - THE WAR\n\nSmoke everywhere.\n"
	doc, err := Parse("flash.fountain", FormatFountain, content)
	require.NoError(t, err)
	require.Equal(t, 1, doc.SceneCount())
	assert.Equal(t, "FLASHBACK - THE WAR", doc.Scenes[0].Heading)
}

func TestParseFountainNoHeadings(t *testing.T) {
	_, err := Parse("prose.fountain", FormatFountain, "Just some prose.\nNo scenes at all.\n")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, FormatFountain, parseErr.Format)
	assert.Contains(t, parseErr.Error(), "no scene headings")
}

func TestParseEmptyContent(t *testing.T) {
	for _, format := range []string{FormatPlain, FormatFountain} {
		doc, err := Parse("empty.txt", format, "   \n\n  ")
		require.NoError(t, err, format)
		assert.Equal(t, 0, doc.SceneCount(), format)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse("weird.bin", "binary", "content")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParsePlain(t *testing.T) {
	content := "The opening scene.\nA quiet street.\n\nThe chase begins.\nTires screech.\n\n\nThe aftermath.\n"
	doc, err := Parse("story.txt", FormatPlain, content)
	require.NoError(t, err)
	require.Equal(t, 3, doc.SceneCount())

	assert.Equal(t, "The opening scene.", doc.Scenes[0].Heading)
	assert.Equal(t, 1, doc.Scenes[0].StartLine)
	assert.Equal(t, "The chase begins.", doc.Scenes[1].Heading)
	assert.Equal(t, 4, doc.Scenes[1].StartLine)
	assert.Equal(t, "The aftermath.", doc.Scenes[2].Heading)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"episode.fountain", FormatFountain},
		{"episode.FDX", FormatFountain},
		{"episode.spmd", FormatFountain},
		{"episode.txt", FormatPlain},
		{"episode", FormatPlain},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFormat(tt.path), tt.path)
	}
}

func TestHasScene(t *testing.T) {
	doc, err := Parse("episode.fountain", FormatFountain, sampleFountain)
	require.NoError(t, err)

	assert.False(t, doc.HasScene(0))
	assert.True(t, doc.HasScene(1))
	assert.True(t, doc.HasScene(3))
	assert.False(t, doc.HasScene(4))
}

func TestWriteAndReadDocument(t *testing.T) {
	tmpDir := t.TempDir()

	doc, err := Parse("episode.fountain", FormatFountain, sampleFountain)
	require.NoError(t, err)

	path := filepath.Join(tmpDir, "scenes.json")
	require.NoError(t, doc.WriteJSON(path))

	loaded, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "episode.fountain")
	require.NoError(t, os.WriteFile(path, []byte(sampleFountain), 0644))

	doc, err := ParseFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, FormatFountain, doc.Format)
	assert.Equal(t, 3, doc.SceneCount())
	assert.Equal(t, path, doc.Source)
}
