package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scenescope/scenescope/internal/gemini"
	"github.com/scenescope/scenescope/internal/logger"
	"github.com/scenescope/scenescope/internal/script"
	"github.com/scenescope/scenescope/internal/storyboard"
	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/artifacts"
	"github.com/scenescope/scenescope/pkg/shared/files"
)

type StoryboardOptions struct {
	ScriptFormat  string
	OutputFormat  string
	OutputFile    string
	TemplatesPath string
	NoAI          bool
}

var allStoryboardOptions StoryboardOptions

// StoryboardRunResult summarizes one storyboard launch for the run artifact.
type StoryboardRunResult struct {
	OutputPath string `json:"output_path"`
	Frames     int    `json:"frames"`
}

var execExampleStoryboard = `  # Generate a storyboard JSON for a screenplay
  scenescope storyboard /path/to/episode.fountain --output /tmp/episode-storyboard.json

  # Generate an HTML storyboard without calling the Gemini API
  scenescope storyboard /path/to/episode.fountain --format html --no-ai --output /tmp/episode-storyboard.html`

// storyboardCmd represents the storyboard command
var storyboardCmd = &cobra.Command{
	Use:                   "storyboard [--format/-f FORMAT] [--output/-o PATH] [--no-ai] SCRIPT_PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               execExampleStoryboard,
	Short:                 "Generate a storyboard from a script",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger(AppConfig, "core-storyboard")

		if len(args) != 1 {
			return fmt.Errorf("a single script path is required")
		}
		scriptPath := args[0]
		if err := files.ValidatePath(scriptPath); err != nil {
			return fmt.Errorf("invalid script path: %w", err)
		}
		if !shared.IsInList(allStoryboardOptions.OutputFormat, []string{"json", "html"}) {
			return fmt.Errorf("unsupported storyboard format %q", allStoryboardOptions.OutputFormat)
		}

		doc, err := script.ParseFile(scriptPath, allStoryboardOptions.ScriptFormat)
		if err != nil {
			log.Error("failed to parse script", "script", scriptPath, "error", err)
			return err
		}
		log.Info("script parsed", "script", scriptPath, "scenes", doc.SceneCount())

		suggested := suggestFrames(cmd.Context(), log, doc)

		defaults := storyboard.DefaultsFromConfig(AppConfig)
		board, err := storyboard.Build(doc, suggested, defaults)
		if err != nil {
			log.Error("failed to build storyboard", "error", err)
			return err
		}

		outputFile := allStoryboardOptions.OutputFile
		if allStoryboardOptions.OutputFormat == "html" {
			templateFile := filepath.Join(allStoryboardOptions.TemplatesPath, "storyboard.html")
			if err := board.WriteHTML(templateFile, outputFile); err != nil {
				return err
			}
		} else {
			if err := board.WriteJSON(outputFile); err != nil {
				return err
			}
		}

		launches := shared.GenericLaunchesResult{
			Launches: []shared.GenericResult{{
				Args:   allStoryboardOptions,
				Result: StoryboardRunResult{OutputPath: outputFile, Frames: len(board.Frames)},
				Status: shared.StatusOK,
			}},
		}
		if _, err := artifacts.SaveArtifactJSON(AppConfig, log, "storyboard", "core", launches); err != nil {
			log.Error("failed to save artifact", "error", err)
			return err
		}

		log.Info("storyboard saved", "path", outputFile, "frames", len(board.Frames))
		return nil
	},
}

// suggestFrames asks the Gemini API for frame descriptions. Any failure
// degrades to scene-derived frames instead of failing the command.
func suggestFrames(ctx context.Context, log hclog.Logger, doc *script.Document) []gemini.Frame {
	if allStoryboardOptions.NoAI {
		return nil
	}

	client, err := gemini.NewClient(AppConfig, logger.NewLogger(AppConfig, "gemini"))
	if err != nil {
		if errors.Is(err, gemini.ErrMissingAPIKey) {
			log.Warn("gemini API key not configured, using scene-derived frames")
			return nil
		}
		log.Warn("gemini client unavailable, using scene-derived frames", "err", err)
		return nil
	}

	system, user := gemini.StoryboardPrompt(doc, client.MaxContentLength())
	response, err := client.GenerateContent(ctx, system, user)
	if err != nil {
		log.Warn("gemini request failed, using scene-derived frames", "err", err)
		return nil
	}

	frames, err := gemini.ParseFrames(response)
	if err != nil {
		log.Warn("gemini returned an unusable storyboard response", "err", err)
		return nil
	}

	log.Info("gemini frames received", "frames", len(frames))
	return frames
}

func init() {
	rootCmd.AddCommand(storyboardCmd)

	storyboardCmd.Flags().StringVar(&allStoryboardOptions.ScriptFormat, "script-format", "", "script format to parse as (txt, fountain)")
	storyboardCmd.Flags().StringVarP(&allStoryboardOptions.OutputFormat, "format", "f", "json", "storyboard output format (json, html)")
	storyboardCmd.Flags().StringVarP(&allStoryboardOptions.OutputFile, "output", "o", "scenescope-storyboard.json", "output file")
	storyboardCmd.Flags().StringVar(&allStoryboardOptions.TemplatesPath, "templates-path", "./templates/storyboard", "path to folder with templates")
	storyboardCmd.Flags().BoolVar(&allStoryboardOptions.NoAI, "no-ai", false, "build frames from scenes only, without calling the Gemini API")
}
