package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/scenescope/scenescope/internal/logger"
	"github.com/scenescope/scenescope/internal/report"
	"github.com/scenescope/scenescope/internal/template"
)

type ToHTMLOptions struct {
	TemplatesPath string
	Title         string
	OutputFile    string
	Input         string
}

var allToHTMLOptions ToHTMLOptions

// ReportMetadata carries the header data for the rendered HTML report.
type ReportMetadata struct {
	Title        string
	Time         time.Time
	SeverityInfo map[string]int
}

var execExampleToHTML = `  # Generate an html report from a validation report
  scenescope to-html --input /tmp/episode/scenescope-report-lint.json --output /tmp/episode/report.html`

// toHtmlCmd represents the toHtml command
var toHtmlCmd = &cobra.Command{
	Use:                   "to-html -i /path/to/input/report.json -o /path/to/output/report.html",
	Short:                 "Generate HTML formatted report",
	Example:               execExampleToHTML,
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger(AppConfig, "core")
		log.Info("to-html called")

		rep, err := report.ReadReport(allToHTMLOptions.Input)
		if err != nil {
			return err
		}

		metadata := &ReportMetadata{
			Title:        allToHTMLOptions.Title,
			Time:         time.Now().UTC(),
			SeverityInfo: rep.SeverityInfo(),
		}

		tmpl, err := template.NewTemplate(filepath.Join(allToHTMLOptions.TemplatesPath, "report.html"))
		if err != nil {
			return err
		}

		data := struct {
			Metadata *ReportMetadata
			Report   *report.Report
		}{
			Metadata: metadata,
			Report:   rep,
		}

		file, err := os.Create(allToHTMLOptions.OutputFile)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := tmpl.Execute(file, data); err != nil {
			return err
		}

		log.Info("html report saved", "path", allToHTMLOptions.OutputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toHtmlCmd)

	toHtmlCmd.Flags().StringVar(&allToHTMLOptions.TemplatesPath, "templates-path", "./templates/tohtml", "path to folder with templates")
	toHtmlCmd.Flags().StringVar(&allToHTMLOptions.Title, "title", "Scenescope Report", "title for generated html file")
	toHtmlCmd.Flags().StringVarP(&allToHTMLOptions.Input, "input", "i", "", "input file with validation report")
	toHtmlCmd.Flags().StringVarP(&allToHTMLOptions.OutputFile, "output", "o", "scenescope-report.html", "output file")
}
