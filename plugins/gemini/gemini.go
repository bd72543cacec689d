package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/scenescope/scenescope/internal/findings"
	"github.com/scenescope/scenescope/internal/gemini"
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

const analyzerName = "gemini"

// AnalyzerGemini represents the Gemini-backed analyzer with its
// configuration and logger.
type AnalyzerGemini struct {
	logger       hclog.Logger
	globalConfig *config.Config
}

// newAnalyzerGemini creates a new instance of AnalyzerGemini.
func newAnalyzerGemini(logger hclog.Logger) *AnalyzerGemini {
	return &AnalyzerGemini{
		logger: logger,
	}
}

// Setup initializes the global configuration for the AnalyzerGemini instance.
func (g *AnalyzerGemini) Setup(configData config.Config) (bool, error) {
	g.globalConfig = &configData
	return true, nil
}

// Analyze sends the parsed scenes to the Gemini API and persists the
// returned issues as findings. API and parsing failures degrade to low
// severity findings instead of failing the run.
func (g *AnalyzerGemini) Analyze(args shared.AnalyzerAnalyzeRequest) (shared.AnalyzerAnalyzeResponse, error) {
	var result shared.AnalyzerAnalyzeResponse
	g.logger.Info("analysis is starting", "script", args.ScriptPath)
	g.logger.Debug("debug info", "args", args)

	if args.ScenesPath == "" || args.ResultsPath == "" {
		return result, fmt.Errorf("'ScenesPath' and 'ResultsPath' arguments must be specified")
	}

	doc, err := script.ReadDocument(args.ScenesPath)
	if err != nil {
		g.logger.Error("failed to read scenes", "error", err)
		return result, err
	}

	cfg := g.globalConfig
	if cfg == nil {
		cfg = &config.Config{}
	}

	client, err := gemini.NewClient(cfg, g.logger)
	if err != nil {
		if errors.Is(err, gemini.ErrMissingAPIKey) {
			g.logger.Error("gemini API key is not configured")
			return result, err
		}
		return result, err
	}

	list := g.analyzeScenes(doc, client)

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

// analyzeScenes runs the validation prompt and converts the answer.
func (g *AnalyzerGemini) analyzeScenes(doc *script.Document, client *gemini.Client) []findings.Finding {
	list := []findings.Finding{}

	if doc.SceneCount() == 0 {
		return list
	}

	system, user := gemini.ValidationPrompt(doc, client.MaxContentLength())
	response, err := client.GenerateContent(context.Background(), system, user)
	if err != nil {
		g.logger.Error("gemini analysis failed", "error", err)
		return append(list, findings.Finding{
			SceneIndex:  0,
			RuleID:      "gemini_analysis_error",
			Severity:    findings.SeverityLow,
			Message:     fmt.Sprintf("Error during Gemini analysis: %v", err),
			Location:    "analysis system",
			Suggestions: []string{"Check Gemini API configuration", "Verify API key is valid"},
			Analyzer:    analyzerName,
		})
	}

	issues, err := gemini.ParseIssues(response)
	if err != nil {
		g.logger.Error("failed to parse gemini response", "error", err)
		return append(list, findings.Finding{
			SceneIndex:  0,
			RuleID:      "gemini_parsing_error",
			Severity:    findings.SeverityLow,
			Message:     "Error parsing Gemini analysis response",
			Location:    "analysis system",
			Suggestions: []string{"Check Gemini API service status", "Try analyzing a shorter script"},
			Analyzer:    analyzerName,
		})
	}

	for _, issue := range issues {
		ruleID := issue.IssueType
		if ruleID == "" {
			ruleID = "unknown"
		}
		message := issue.Description
		if message == "" {
			message = "No description provided"
		}
		list = append(list, findings.Finding{
			SceneIndex:  issue.SceneNumber,
			RuleID:      ruleID,
			Severity:    findings.NormalizeSeverity(issue.Severity),
			Message:     message,
			Location:    issue.Location,
			Suggestions: issue.Suggestions,
			Analyzer:    analyzerName,
		})
	}

	return list
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Level:      hclog.Trace,
		Output:     os.Stderr,
		JSONFormat: true,
	})

	geminiInstance := newAnalyzerGemini(logger)

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: shared.HandshakeConfig,
		Plugins: map[string]plugin.Plugin{
			shared.PluginTypeAnalyzer: &shared.AnalyzerPlugin{Impl: geminiInstance},
		},
		Logger: logger,
	})
}
