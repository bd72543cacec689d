package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/scenescope/scenescope/internal/script"
	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/config"
	"github.com/scenescope/scenescope/pkg/shared/files"
)

// Analyzer represents the configuration and behavior of an analysis run.
type Analyzer struct {
	pluginName     string       // Name of the analyzer plugin to use
	configPath     string       // Path to the configuration file for the analyzer
	scriptFormat   string       // Declared script format, empty for extension detection
	additionalArgs []string     // Additional arguments for the analyzer
	concurrentJobs int          // Number of concurrent jobs to run
	logger         hclog.Logger // Logger for logging messages and errors
}

// New creates a new Analyzer instance with the provided configuration.
func New(pluginName, configPath, scriptFormat string, additionalArgs []string, concurrentJobs int, logger hclog.Logger) *Analyzer {
	return &Analyzer{
		pluginName:     pluginName,
		configPath:     configPath,
		scriptFormat:   scriptFormat,
		additionalArgs: additionalArgs,
		concurrentJobs: concurrentJobs,
		logger:         logger,
	}
}

// PrepareAnalyzeArgs parses every script, persists its scenes JSON into the
// temp folder and builds one analysis request per script.
func (a *Analyzer) PrepareAnalyzeArgs(cfg *config.Config, scriptPaths []string, outputPath string) ([]shared.AnalyzerAnalyzeRequest, error) {
	var analyzeArgs []shared.AnalyzerAnalyzeRequest

	nameTemplate := a.generateNameTemplate()

	for _, scriptPath := range scriptPaths {
		doc, err := script.ParseFile(scriptPath, a.scriptFormat)
		if err != nil {
			return nil, fmt.Errorf("failed to parse script %q: %w", scriptPath, err)
		}

		scenesPath, err := a.writeScenes(cfg, doc)
		if err != nil {
			return nil, err
		}

		resultsFile, err := a.determineResultsFilePath(cfg, scriptPath, outputPath, nameTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to determine results file path: %w", err)
		}

		analyzeArgs = append(analyzeArgs, shared.AnalyzerAnalyzeRequest{
			ScriptPath:     scriptPath,
			ScenesPath:     scenesPath,
			ResultsPath:    resultsFile,
			ConfigPath:     a.configPath,
			AdditionalArgs: a.additionalArgs,
		})
	}

	return analyzeArgs, nil
}

// writeScenes persists the parsed document next to the run's temp files and
// returns its path.
func (a *Analyzer) writeScenes(cfg *config.Config, doc *script.Document) (string, error) {
	tempFolder := config.GetTempHome(cfg)
	if err := files.CreateFolderIfNotExists(tempFolder); err != nil {
		return "", fmt.Errorf("failed to create temp folder %q: %w", tempFolder, err)
	}

	base := strings.TrimSuffix(filepath.Base(doc.Source), filepath.Ext(doc.Source))
	scenesPath := filepath.Join(tempFolder, fmt.Sprintf("%s-scenes.json", base))
	if err := doc.WriteJSON(scenesPath); err != nil {
		return "", err
	}
	return scenesPath, nil
}

// determineResultsFilePath determines the findings file path based on script and output paths.
func (a *Analyzer) determineResultsFilePath(cfg *config.Config, scriptPath, outputPath, nameTemplate string) (string, error) {
	if outputPath != "" {
		return a.getOutputFilePath(outputPath, nameTemplate)
	}

	base := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	resultsFolder := filepath.Join(config.GetResultsHome(cfg), base)
	return a.getOutputFilePath(resultsFolder, nameTemplate)
}

// getOutputFilePath handles the output path, creating directories as necessary.
func (a *Analyzer) getOutputFilePath(path, nameTemplate string) (string, error) {
	var resultsFile, resultsFolder string

	fileInfo, err := os.Stat(path)
	if err == nil && fileInfo.IsDir() {
		resultsFolder = path
		resultsFile = filepath.Join(path, nameTemplate)
	} else if filepath.Ext(path) == "" {
		// No extension, treat as directory
		resultsFolder = path
		resultsFile = filepath.Join(path, nameTemplate)
	} else {
		resultsFolder = filepath.Dir(path)
		resultsFile = path
	}

	if err := files.CreateFolderIfNotExists(resultsFolder); err != nil {
		return "", fmt.Errorf("failed to create results folder '%s': %w", resultsFolder, err)
	}

	return resultsFile, nil
}

// generateNameTemplate generates a name template for the findings file.
func (a *Analyzer) generateNameTemplate() string {
	startTime := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("scenescope-findings-%s-%s.json", a.pluginName, startTime)
}

// analyzeScript executes the analysis of one script using the specified plugin.
func (a *Analyzer) analyzeScript(cfg *config.Config, analyzeArg shared.AnalyzerAnalyzeRequest) (shared.AnalyzerAnalyzeResponse, error) {
	var result shared.AnalyzerAnalyzeResponse

	err := shared.WithPlugin(cfg, "plugin-analyzer", shared.PluginTypeAnalyzer, a.pluginName, func(raw interface{}) error {
		analyzer, ok := raw.(shared.Analyzer)
		if !ok {
			return fmt.Errorf("invalid plugin type")
		}
		if _, err := analyzer.Setup(*cfg); err != nil {
			return fmt.Errorf("analyzer plugin setup failed: %w", err)
		}
		var err error
		result, err = analyzer.Analyze(analyzeArg)
		if err != nil {
			a.logger.Error("analyzer plugin failed")
			return fmt.Errorf("analyzer plugin failed. Analyze arguments: %v. Error: %w", analyzeArg, err)
		}
		return nil
	})

	return result, err
}

// AnalyzeScripts analyzes multiple scripts concurrently and returns the aggregated results.
func (a *Analyzer) AnalyzeScripts(cfg *config.Config, analyzeArgs []shared.AnalyzerAnalyzeRequest) shared.GenericLaunchesResult {
	a.logger.Info("analysis starting", "total", len(analyzeArgs), "goroutines", a.concurrentJobs)

	var results shared.GenericLaunchesResult
	resultsChannel := make(chan shared.GenericResult, len(analyzeArgs))
	values := make([]interface{}, len(analyzeArgs))
	for i := range analyzeArgs {
		values[i] = analyzeArgs[i]
	}

	shared.ForEveryWithBoundedGoroutines(a.concurrentJobs, values, func(i int, value interface{}) {
		analyzeArg, ok := value.(shared.AnalyzerAnalyzeRequest)
		if !ok {
			a.logger.Error("invalid analyze argument type")
			return
		}
		a.logger.Info("goroutine started", "#", i+1, "script", analyzeArg.ScriptPath)

		result, err := a.analyzeScript(cfg, analyzeArg)
		if err != nil {
			resultsChannel <- shared.GenericResult{Args: analyzeArg, Result: result, Status: shared.StatusFailed, Message: err.Error()}
		} else {
			resultsChannel <- shared.GenericResult{Args: analyzeArg, Result: result, Status: shared.StatusOK, Message: ""}
		}
	})

	close(resultsChannel)
	for result := range resultsChannel {
		results.Launches = append(results.Launches, result)
	}
	return results
}
