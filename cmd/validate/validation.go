package validate

import (
	"fmt"

	"github.com/scenescope/scenescope/internal/script"
	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/files"
)

// validateValidateArgs checks the validate command arguments for consistency.
func validateValidateArgs(options *RunOptionsValidate, args []string, argsLenAtDash int) error {
	if options.Analyzer == "" {
		return fmt.Errorf("the 'analyzer' flag must be specified")
	}

	positional := args
	if argsLenAtDash >= 0 {
		positional = args[:argsLenAtDash]
	}

	if options.InputFile == "" && len(positional) == 0 {
		return fmt.Errorf("either the 'input-file' flag or a script path must be specified")
	}
	if options.InputFile != "" && len(positional) > 0 {
		return fmt.Errorf("the 'input-file' flag and script paths are mutually exclusive")
	}

	if options.InputFile != "" {
		if err := files.ValidatePath(options.InputFile); err != nil {
			return fmt.Errorf("invalid input file: %w", err)
		}
	}
	for _, path := range positional {
		if err := files.ValidatePath(path); err != nil {
			return fmt.Errorf("invalid script path: %w", err)
		}
	}

	if options.ScriptFormat != "" && !shared.IsInList(options.ScriptFormat, []string{script.FormatPlain, script.FormatFountain}) {
		return fmt.Errorf("unsupported script format %q", options.ScriptFormat)
	}
	if options.ReportFormat != "" && !shared.IsInList(options.ReportFormat, []string{"json", "sarif"}) {
		return fmt.Errorf("unsupported report format %q", options.ReportFormat)
	}
	if options.Threads < 1 {
		return fmt.Errorf("the 'threads' flag must be at least 1")
	}

	return nil
}
