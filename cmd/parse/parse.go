package parse

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenescope/scenescope/internal/logger"
	"github.com/scenescope/scenescope/internal/script"
	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/config"
)

// RunOptionsParse holds the arguments for the parse command.
type RunOptionsParse struct {
	Format     string
	OutputPath string
}

var (
	AppConfig         *config.Config
	parseOptions      RunOptionsParse
	exampleParseUsage = `  # Parse a screenplay into scenes and print them
  scenescope parse /path/to/episode.fountain

  # Parse a plain text script and write the scenes JSON to a file
  scenescope parse --format txt --output /tmp/episode-scenes.json /path/to/episode.txt`
)

// ParseCmd represents the parse command.
var ParseCmd = &cobra.Command{
	Use:                   "parse [--format/-f FORMAT] [--output/-o PATH] SCRIPT_PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleParseUsage,
	Short:                 "Parse a script file into an ordered scene sequence",
	RunE:                  runParseCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runParseCommand executes the parse command.
func runParseCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	log := logger.NewLogger(AppConfig, "core-parse")

	if err := validateParseArgs(&parseOptions, args); err != nil {
		log.Error("invalid parse arguments", "error", err)
		return err
	}

	scriptPath := args[0]
	doc, err := script.ParseFile(scriptPath, parseOptions.Format)
	if err != nil {
		log.Error("failed to parse script", "script", scriptPath, "error", err)
		return err
	}

	log.Info("script parsed", "script", scriptPath, "format", doc.Format, "scenes", doc.SceneCount())

	if parseOptions.OutputPath != "" {
		if err := doc.WriteJSON(parseOptions.OutputPath); err != nil {
			log.Error("failed to write scenes", "error", err)
			return err
		}
		log.Info("scenes saved", "path", parseOptions.OutputPath)
		return nil
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshaling scenes: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

// Initialize flags for the parse command.
func init() {
	ParseCmd.Flags().StringVarP(&parseOptions.Format, "format", "f", "", "Script format to parse as (txt, fountain). Detected from the file extension when omitted.")
	ParseCmd.Flags().BoolP("help", "h", false, "Show help for the parse command.")
	ParseCmd.Flags().StringVarP(&parseOptions.OutputPath, "output", "o", "", "Path where the scenes JSON will be saved. Printed to stdout when omitted.")
}
