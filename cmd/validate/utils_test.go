package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScriptPaths(t *testing.T) {
	options := &RunOptionsValidate{}
	paths, err := resolveScriptPaths(options, []string{"a.fountain", "b.txt", "--strict"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.fountain", "b.txt"}, paths)
	assert.Equal(t, []string{"--strict"}, options.AdditionalArgs)

	options = &RunOptionsValidate{}
	paths, err = resolveScriptPaths(options, []string{"a.fountain"}, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.fountain"}, paths)
	assert.Empty(t, options.AdditionalArgs)
}

func TestReadScriptList(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "scripts.list")
	content := "# pilot episodes\n/scripts/ep01.fountain\n\n  /scripts/ep02.txt  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	paths, err := readScriptList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/scripts/ep01.fountain", "/scripts/ep02.txt"}, paths)
}

func TestReadScriptListEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "scripts.list")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n\n"), 0644))

	_, err := readScriptList(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no script paths")
}

func TestReportPathFor(t *testing.T) {
	tests := []struct {
		resultsPath  string
		reportFormat string
		want         string
	}{
		{
			resultsPath:  "/results/ep01/scenescope-findings-lint-2026-08-23T10:00:00Z.json",
			reportFormat: "json",
			want:         "/results/ep01/scenescope-report-lint-2026-08-23T10:00:00Z.json",
		},
		{
			resultsPath:  "/results/ep01/scenescope-findings-lint-2026-08-23T10:00:00Z.json",
			reportFormat: "sarif",
			want:         "/results/ep01/scenescope-report-lint-2026-08-23T10:00:00Z.sarif",
		},
		{
			// an explicit output file must not be overwritten by the report
			resultsPath:  "/tmp/custom-output.json",
			reportFormat: "json",
			want:         "/tmp/custom-output-report.json",
		},
		{
			resultsPath:  "/tmp/custom-output.json",
			reportFormat: "sarif",
			want:         "/tmp/custom-output-report.sarif",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, reportPathFor(tt.resultsPath, tt.reportFormat), tt.resultsPath)
	}
}
