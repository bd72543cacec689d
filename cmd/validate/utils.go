package validate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scenescope/scenescope/internal/findings"
	"github.com/scenescope/scenescope/internal/git"
	"github.com/scenescope/scenescope/internal/report"
	"github.com/scenescope/scenescope/internal/script"
	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/config"

	"github.com/scenescope/scenescope/cmd/version"
)

// resolveScriptPaths returns the scripts to validate: the positional paths
// before any dash separator, or the lines of the input file.
func resolveScriptPaths(options *RunOptionsValidate, args []string, argsLenAtDash int) ([]string, error) {
	if argsLenAtDash >= 0 {
		options.AdditionalArgs = args[argsLenAtDash:]
		args = args[:argsLenAtDash]
	}

	if options.InputFile != "" {
		return readScriptList(options.InputFile)
	}
	return args, nil
}

// readScriptList reads a newline separated list of script paths.
func readScriptList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %q: %w", path, err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file %q: %w", path, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("input file %q contains no script paths", path)
	}
	return paths, nil
}

// readFindings loads the findings JSON a plugin persisted.
func readFindings(path string) ([]findings.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read findings %q: %w", path, err)
	}
	var list []findings.Finding
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal findings %q: %w", path, err)
	}
	return list, nil
}

// reportPathFor derives the report location from the findings location.
// The report must never land on the findings file itself, so explicit
// output paths without the findings name segment get a -report suffix.
func reportPathFor(resultsPath, reportFormat string) string {
	path := strings.Replace(resultsPath, "scenescope-findings", "scenescope-report", 1)
	if path == resultsPath {
		ext := filepath.Ext(path)
		path = strings.TrimSuffix(path, ext) + "-report" + ext
	}
	if reportFormat == "sarif" {
		path = strings.TrimSuffix(path, ".json") + ".sarif"
	}
	return path
}

// buildReports turns each successful launch into a persisted report.
func buildReports(cfg *config.Config, log hclog.Logger, options *RunOptionsValidate, result shared.GenericLaunchesResult) ([]*report.Report, error) {
	var reports []*report.Report

	for _, launch := range result.Launches {
		if launch.Status != shared.StatusOK {
			continue
		}

		analyzeArg, ok := launch.Args.(shared.AnalyzerAnalyzeRequest)
		if !ok {
			return nil, fmt.Errorf("unexpected launch argument type %T", launch.Args)
		}

		doc, err := script.ReadDocument(analyzeArg.ScenesPath)
		if err != nil {
			return nil, err
		}

		list, err := readFindings(analyzeArg.ResultsPath)
		if err != nil {
			return nil, err
		}

		builder := report.NewBuilder("scenescope", version.CoreVersion, report.SourceInfo{
			Path:       analyzeArg.ScriptPath,
			Format:     doc.Format,
			SceneCount: doc.SceneCount(),
		}).WithAnalyzer(options.Analyzer)

		if md, err := git.CollectRepositoryMetadata(analyzeArg.ScriptPath); err == nil {
			builder.WithRepository(md)
		} else {
			log.Debug("can't collect repository metadata", "err", err)
		}

		if dropped := builder.AddAll(list); dropped > 0 {
			log.Warn("dropped findings referencing unknown scenes", "script", analyzeArg.ScriptPath, "dropped", dropped)
		}

		rep := builder.Build()
		reportPath := reportPathFor(analyzeArg.ResultsPath, options.ReportFormat)

		if options.ReportFormat == "sarif" {
			err = rep.WriteSarif(reportPath, doc)
		} else {
			err = rep.WriteJSON(reportPath)
		}
		if err != nil {
			return nil, err
		}

		log.Info("report saved", "script", analyzeArg.ScriptPath, "path", reportPath, "valid", rep.Valid)
		reports = append(reports, rep)
	}

	return reports, nil
}

// printReportSummaries prints one summary line per report to stdout.
func printReportSummaries(reports []*report.Report) {
	for _, rep := range reports {
		status := "VALID"
		if !rep.Valid {
			status = "INVALID"
		}
		fmt.Printf("%s: %s %s\n", rep.Metadata.Source.Path, status, rep.Summary)
	}
}

// countFailures counts the launches that did not complete.
func countFailures(result shared.GenericLaunchesResult) int {
	failures := 0
	for _, launch := range result.Launches {
		if launch.Status == shared.StatusFailed {
			failures++
		}
	}
	return failures
}
