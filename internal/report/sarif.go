package report

import (
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scenescope/scenescope/internal/findings"
	"github.com/scenescope/scenescope/internal/script"
)

const toolInformationURI = "https://github.com/scenescope/scenescope"

// ToSarif converts the report to SARIF 2.1.0. Each rule ID becomes a
// reporting descriptor; findings map to results with the severity levels
// high=error, medium=warning, low=note. The document, when provided,
// supplies scene start lines for result locations.
func (r *Report) ToSarif(doc *script.Document) (*sarif.Report, error) {
	sarifReport, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(r.Metadata.Tool, toolInformationURI)
	if r.Metadata.ToolVersion != "" {
		version := r.Metadata.ToolVersion
		run.Tool.Driver.SemanticVersion = &version
	}

	for _, f := range r.Findings {
		level := findings.SarifLevel(f.Severity)

		rule := run.AddRule(f.RuleID).
			WithDescription(f.Message).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: level,
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(r.Metadata.Source.Path)).
				WithRegion(sarif.NewRegion().WithStartLine(sceneStartLine(doc, f.SceneIndex))),
		)

		message := f.Message
		if f.Location != "" {
			message = fmt.Sprintf("%s (%s)", f.Message, f.Location)
		}

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel(level).
			WithLocations([]*sarif.Location{location})
		result.Properties = sarif.Properties{
			"Level":      level,
			"SceneIndex": f.SceneIndex,
			"Severity":   findings.NormalizeSeverity(f.Severity),
		}
		run.AddResult(result)
	}

	sarifReport.AddRun(run)
	return sarifReport, nil
}

// WriteSarif converts the report and writes it to the given path.
func (r *Report) WriteSarif(path string, doc *script.Document) error {
	sarifReport, err := r.ToSarif(doc)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()

	return sarifReport.PrettyWrite(file)
}

// sceneStartLine returns the line the scene heading sits on, or 1 when the
// scene is unknown. Index 0 findings describe the document as a whole.
func sceneStartLine(doc *script.Document, sceneIndex int) int {
	if doc == nil || sceneIndex < 1 || sceneIndex > len(doc.Scenes) {
		return 1
	}
	if line := doc.Scenes[sceneIndex-1].StartLine; line > 0 {
		return line
	}
	return 1
}
