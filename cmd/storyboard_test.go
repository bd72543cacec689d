package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenescope/scenescope/pkg/shared/config"
)

func TestStoryboardCommandWritesArtifact(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &config.Config{}
	cfg.Scenescope.HomeFolder = tmpDir
	AppConfig = cfg

	scriptPath := filepath.Join(tmpDir, "episode.fountain")
	require.NoError(t, os.WriteFile(scriptPath, []byte("INT. KITCHEN - NIGHT\n\nMARGOT stands at the sink.\n"), 0644))

	outputFile := filepath.Join(tmpDir, "board.json")
	allStoryboardOptions = StoryboardOptions{
		OutputFormat: "json",
		OutputFile:   outputFile,
		NoAI:         true,
	}

	require.NoError(t, storyboardCmd.RunE(storyboardCmd, []string{scriptPath}))

	_, err := os.Stat(outputFile)
	require.NoError(t, err)

	// every run leaves a timestamped launch artifact under the results home
	entries, err := os.ReadDir(filepath.Join(tmpDir, "results", "artifacts"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "storyboard_core_")
	assert.Contains(t, entries[0].Name(), ".scenescope-artifact.json")
}
