package artifacts

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/config"
	"github.com/scenescope/scenescope/pkg/shared/files"
)

// GetArtifactName builds a timestamped artifact base name.
// Example: validate_gemini_2025-09-15T08:28:46Z.scenescope-artifact.
func GetArtifactName(command, plugin string, t time.Time) string {
	ts := t.UTC().Format(time.RFC3339)
	return fmt.Sprintf("%s_%s_%s.scenescope-artifact", command, plugin, ts)
}

// SaveArtifactJSON writes the provided launch result to <artifacts>/<base>.json.
// Returns the full path.
func SaveArtifactJSON(cfg *config.Config, logger hclog.Logger, command, plugin string, result shared.GenericLaunchesResult) (string, error) {
	dir := config.GetArtifactsHome(cfg)
	base := GetArtifactName(command, plugin, time.Now())
	path := filepath.Join(dir, base+".json")

	resultData, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return path, fmt.Errorf("error marshaling the result data: %w", err)
	}

	if err := files.WriteJSONFile(path, resultData); err != nil {
		return path, fmt.Errorf("error writing result to artifact file: %w", err)
	}
	logger.Info("artifact saved to file", "path", path)

	return path, nil
}
