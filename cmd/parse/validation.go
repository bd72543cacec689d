package parse

import (
	"fmt"

	"github.com/scenescope/scenescope/internal/script"
	"github.com/scenescope/scenescope/pkg/shared"
	"github.com/scenescope/scenescope/pkg/shared/files"
)

// validateParseArgs checks the parse command arguments for consistency.
func validateParseArgs(options *RunOptionsParse, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a script path is required")
	}
	if len(args) > 1 {
		return fmt.Errorf("parse accepts exactly one script path, got %d", len(args))
	}

	if err := files.ValidatePath(args[0]); err != nil {
		return fmt.Errorf("invalid script path: %w", err)
	}

	if options.Format != "" && !shared.IsInList(options.Format, []string{script.FormatPlain, script.FormatFountain}) {
		return fmt.Errorf("unsupported script format %q", options.Format)
	}

	return nil
}
