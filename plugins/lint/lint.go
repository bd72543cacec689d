package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/scenescope/scenescope/internal/script"
	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/config"
	"github.com/scenescope/scenescope/pkg/shared/files"
)

// Metadata of the plugin
var (
	Version       = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// AnalyzerLint represents the rule-based analyzer with its configuration and logger.
type AnalyzerLint struct {
	logger       hclog.Logger
	globalConfig *config.Config
}

// newAnalyzerLint creates a new instance of AnalyzerLint.
func newAnalyzerLint(logger hclog.Logger) *AnalyzerLint {
	return &AnalyzerLint{
		logger: logger,
	}
}

// setGlobalConfig sets the global configuration for the AnalyzerLint instance.
func (g *AnalyzerLint) setGlobalConfig(globalConfig *config.Config) {
	g.globalConfig = globalConfig
}

// Analyze runs the structural, continuity and character rules over the
// parsed scenes and persists the findings.
func (g *AnalyzerLint) Analyze(args shared.AnalyzerAnalyzeRequest) (shared.AnalyzerAnalyzeResponse, error) {
	var result shared.AnalyzerAnalyzeResponse
	g.logger.Info("analysis is starting", "script", args.ScriptPath)
	g.logger.Debug("debug info", "args", args)

	if err := g.validateAnalyze(&args); err != nil {
		g.logger.Error("validation failed for analyze operation", "error", err)
		return result, err
	}

	doc, err := script.ReadDocument(args.ScenesPath)
	if err != nil {
		g.logger.Error("failed to read scenes", "error", err)
		return result, err
	}

	strict := shared.IsInList("--strict", args.AdditionalArgs)
	list := runRules(doc, strict)

	data, err := json.MarshalIndent(list, "", "    ")
	if err != nil {
		return result, fmt.Errorf("error marshaling findings: %w", err)
	}
	if err := files.WriteJSONFile(args.ResultsPath, data); err != nil {
		g.logger.Error("failed to write findings", "error", err)
		return result, err
	}

	result.ResultsPath = args.ResultsPath
	result.FindingsCount = len(list)
	g.logger.Info("analysis finished", "script", args.ScriptPath, "findings", len(list))
	g.logger.Info("result saved", "path", args.ResultsPath)
	return result, nil
}

// Setup initializes the global configuration for the AnalyzerLint instance.
func (g *AnalyzerLint) Setup(configData config.Config) (bool, error) {
	g.setGlobalConfig(&configData)
	return true, nil
}

// validateAnalyze checks the analyze request for consistency.
func (g *AnalyzerLint) validateAnalyze(args *shared.AnalyzerAnalyzeRequest) error {
	if args.ScenesPath == "" {
		return fmt.Errorf("'ScenesPath' argument must be specified")
	}
	if args.ResultsPath == "" {
		return fmt.Errorf("'ResultsPath' argument must be specified")
	}
	return nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Level:      hclog.Trace,
		Output:     os.Stderr,
		JSONFormat: true,
	})

	lintInstance := newAnalyzerLint(logger)

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: shared.HandshakeConfig,
		Plugins: map[string]plugin.Plugin{
			shared.PluginTypeAnalyzer: &shared.AnalyzerPlugin{Impl: lintInstance},
		},
		Logger: logger,
	})
}
