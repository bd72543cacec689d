package validate

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scenescope/scenescope/internal/analyzer"
	"github.com/scenescope/scenescope/internal/logger"
	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/artifacts"
	"github.com/scenescope/scenescope/pkg/shared/config"
	"github.com/scenescope/scenescope/pkg/shared/errors"
)

// RunOptionsValidate holds the arguments for the validate command.
type RunOptionsValidate struct {
	Analyzer       string
	InputFile      string
	ScriptFormat   string
	ReportFormat   string
	AnalyzerConfig string
	AdditionalArgs []string
	OutputPath     string
	Threads        int
}

// Global variables for configuration and command arguments
var (
	AppConfig            *config.Config
	validateOptions      RunOptionsValidate
	exampleValidateUsage = `  # Running the lint analyzer on a single script
  scenescope validate --analyzer lint /path/to/episode.fountain

  # Running the gemini analyzer with a SARIF report
  scenescope validate --analyzer gemini --format sarif /path/to/episode.fountain

  # Running the lint analyzer over a list of scripts with multiple concurrent threads
  scenescope validate --analyzer lint --input-file /path/to/scripts.list -j 2

  # Running the lint analyzer with additional arguments
  scenescope validate --analyzer lint /path/to/episode.txt -- --strict

  # Running the lint analyzer and specifying the output file
  scenescope validate --analyzer lint /path/to/episode.txt --output /tmp/findings.json`
)

// ValidateCmd represents the validate command.
var ValidateCmd = &cobra.Command{
	Use:                   "validate --analyzer/-p PLUGIN_NAME [--config/-c PATH] [--format/-f REPORT_FORMAT] [-j THREADS_NUMBER, default=1] {--input-file/-i PATH | SCRIPT_PATH} -- [args...]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleValidateUsage,
	Short:                 "Provides a top-level interface with orchestration for running a specified analyzer",
	RunE:                  runValidateCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
	ValidateCmd.Long = generateLongDescription(AppConfig)
}

// runValidateCommand executes the validate command.
func runValidateCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	log := logger.NewLogger(AppConfig, "core-validate")
	argsLenAtDash := cmd.ArgsLenAtDash()

	if err := validateValidateArgs(&validateOptions, args, argsLenAtDash); err != nil {
		log.Error("invalid validate arguments", "error", err)
		return errors.NewCommandError(validateOptions, nil, fmt.Errorf("invalid validate arguments: %w", err), 1)
	}

	if validateOptions.ReportFormat == "" && shared.IsInList(AppConfig.Output.DefaultFormat, []string{"json", "sarif"}) {
		validateOptions.ReportFormat = AppConfig.Output.DefaultFormat
	}
	if validateOptions.OutputPath == "" {
		validateOptions.OutputPath = AppConfig.Output.OutputDirectory
	}

	scriptPaths, err := resolveScriptPaths(&validateOptions, args, argsLenAtDash)
	if err != nil {
		log.Error("failed to resolve script paths", "error", err)
		return err
	}

	a := analyzer.New(
		validateOptions.Analyzer,
		validateOptions.AnalyzerConfig,
		validateOptions.ScriptFormat,
		validateOptions.AdditionalArgs,
		validateOptions.Threads,
		log,
	)

	analyzeArgs, err := a.PrepareAnalyzeArgs(AppConfig, scriptPaths, validateOptions.OutputPath)
	if err != nil {
		log.Error("failed to prepare analyze arguments", "error", err)
		return err
	}

	analyzeResult := a.AnalyzeScripts(AppConfig, analyzeArgs)

	if _, err := artifacts.SaveArtifactJSON(AppConfig, log, "validate", validateOptions.Analyzer, analyzeResult); err != nil {
		log.Error("failed to save artifact", "error", err)
		return err
	}

	reports, err := buildReports(AppConfig, log, &validateOptions, analyzeResult)
	if err != nil {
		log.Error("failed to build reports", "error", err)
		return err
	}

	printReportSummaries(reports)

	if analyzeResult.HasFailures() {
		validateErr := fmt.Errorf("validate command failed for %d of %d scripts", countFailures(analyzeResult), len(analyzeResult.Launches))
		return errors.NewCommandErrorWithResult(analyzeResult, validateErr, 2)
	}

	log.Info("validate command completed successfully")
	return nil
}

// generateLongDescription generates the long description dynamically with the list of available analyzer plugins.
func generateLongDescription(AppConfig *config.Config) string {
	pluginsMeta := shared.GetPluginVersions(config.GetPluginsHome(AppConfig), shared.PluginTypeAnalyzer)
	var plugins []string
	for plugin := range pluginsMeta {
		plugins = append(plugins, plugin)
	}
	return fmt.Sprintf(`Provides a top-level interface with orchestration for running a specified analyzer.

List of available analyzer plugins:
  %s`, strings.Join(plugins, "\n  "))
}

// Initialize flags for the validate command.
func init() {
	ValidateCmd.Flags().StringVarP(&validateOptions.Analyzer, "analyzer", "p", "", "Name of the analyzer plugin to use (e.g., lint, gemini).")
	ValidateCmd.Flags().StringVarP(&validateOptions.AnalyzerConfig, "config", "c", "", "Path to a configuration file for the analyzer. The format depends on the specific analyzer being used.")
	ValidateCmd.Flags().StringVar(&validateOptions.ScriptFormat, "script-format", "", "Script format to parse as (txt, fountain). Detected from the file extension when omitted.")
	ValidateCmd.Flags().StringVarP(&validateOptions.ReportFormat, "format", "f", "", "Format for the report with results (json, sarif).")
	ValidateCmd.Flags().BoolP("help", "h", false, "Show help for the validate command.")
	ValidateCmd.Flags().StringVarP(&validateOptions.InputFile, "input-file", "i", "", "Path to a file containing a newline separated list of scripts to validate.")
	ValidateCmd.Flags().StringVarP(&validateOptions.OutputPath, "output", "o", "", "Path to the output file or directory where the findings will be saved.")
	ValidateCmd.Flags().IntVarP(&validateOptions.Threads, "threads", "j", 1, "Number of concurrent threads to use.")
}
