package report

import (
	"fmt"
	"io"

	"github.com/conformd/cxxlint/checker"
	"github.com/conformd/cxxlint/model"
)

// writeText renders one line per finding followed by skipped-unit
// annotations and a summary.
func writeText(w io.Writer, result *checker.Result) error {
	var errors, warnings, infos int
	for i := range result.Findings {
		f := &result.Findings[i]
		switch f.Severity {
		case model.SeverityError:
			errors++
		case model.SeverityWarning:
			warnings++
		default:
			infos++
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
			f.Location.Path, f.Location.Line, f.Location.Column,
			f.Severity, f.Message, f.RuleID); err != nil {
			return err
		}
		if f.Suggestion != "" {
			if _, err := fmt.Fprintf(w, "\tsuggestion: %s\n", f.Suggestion); err != nil {
				return err
			}
		}
	}
	for _, skip := range result.Skipped {
		state := "skipped"
		if skip.Partial {
			state = "partial"
		}
		if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", skip.Path, state, skip.Reason); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d findings (%d errors, %d warnings, %d notes) in %d units\n",
		len(result.Findings), errors, warnings, infos, result.Units)
	return err
}
