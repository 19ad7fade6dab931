package report

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/conformd/cxxlint/checker"
	"github.com/conformd/cxxlint/model"
	"github.com/conformd/cxxlint/rules"
)

const toolName = "cxxlint"
const toolURI = "https://github.com/conformd/cxxlint"

// writeSARIF renders the result as a SARIF 2.1.0 log with one run
func writeSARIF(w io.Writer, result *checker.Result) error {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI(toolName, toolURI)

	registered := map[string]bool{}
	for i := range result.Findings {
		f := &result.Findings[i]
		if !registered[f.RuleID] {
			registered[f.RuleID] = true
			description := f.Message
			if def, ok := rules.Lookup(f.RuleID); ok {
				description = def.Summary
			}
			run.AddRule(f.RuleID).
				WithDescription(description).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: toSarifLevel(f.Severity),
				})
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.Location.Path)).
				WithRegion(sarif.NewRegion().
					WithStartLine(f.Location.Line).
					WithStartColumn(f.Location.Column)),
		)
		message := f.Message
		if f.Suggestion != "" {
			message += " (" + f.Suggestion + ")"
		}
		run.AddResult(sarif.NewRuleResult(f.RuleID).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel(toSarifLevel(f.Severity)).
			WithLocations([]*sarif.Location{location}))
	}
	log.AddRun(run)
	return log.PrettyWrite(w)
}

func toSarifLevel(severity model.Severity) string {
	switch severity {
	case model.SeverityError:
		return "error"
	case model.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
