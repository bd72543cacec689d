package storyboard

import (
	"fmt"
	"os"

	"github.com/scenescope/scenescope/internal/template"
)

// WriteHTML renders the board through the given template file and writes
// the result to outputPath.
func (b *Board) WriteHTML(templateFile, outputPath string) error {
	tmpl, err := template.NewTemplate(templateFile)
	if err != nil {
		return fmt.Errorf("failed to parse storyboard template: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", outputPath, err)
	}
	defer file.Close()

	data := struct {
		Board *Board
	}{
		Board: b,
	}

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render storyboard: %w", err)
	}
	return nil
}
