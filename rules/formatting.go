package rules

import (
	"fmt"

	"github.com/conformd/cxxlint/model"
)

const (
	RuleBracePlacement    = "format-brace-placement"
	RuleIfBraces          = "format-if-braces"
	RuleSwitchFallthrough = "format-switch-fallthrough"
	RuleSwitchDefault     = "format-switch-default"
)

func init() {
	register(Definition{
		ID:       RuleBracePlacement,
		Category: model.CategoryFormatting,
		Severity: model.SeverityWarning,
		Summary:  "opening brace must start its own line",
	})
	register(Definition{
		ID:         RuleIfBraces,
		Category:   model.CategoryFormatting,
		Severity:   model.SeverityWarning,
		Summary:    "every if/else arm must be braced",
		Suggestion: "wrap the arm body in braces even for a single statement",
	})
	register(Definition{
		ID:         RuleSwitchFallthrough,
		Category:   model.CategorySwitchFallthrough,
		Severity:   model.SeverityWarning,
		Summary:    "case block falls through without an explicit marker",
		Suggestion: "end the block with break (or another transfer) or mark the fallthrough explicitly",
	})
	register(Definition{
		ID:         RuleSwitchDefault,
		Category:   model.CategorySwitchFallthrough,
		Severity:   model.SeverityWarning,
		Summary:    "switch must have a default case ending in break",
		Suggestion: "add a default case with a break statement",
	})
}

func evalFormatting(unit *model.SourceUnit, s Settings, o Options) []model.Finding {
	var out []model.Finding

	for _, brace := range unit.Braces {
		if !brace.OwnLine {
			out = s.emit(out, RuleBracePlacement, brace.Location,
				fmt.Sprintf("opening brace of %s block must start its own line", brace.Context), "")
		}
	}

	for _, arm := range unit.IfArms {
		if arm.Compound {
			continue
		}
		kind := "if"
		if arm.Else {
			kind = "else"
		}
		out = s.emit(out, RuleIfBraces, arm.Location,
			fmt.Sprintf("%s arm must use braces", kind), "")
	}

	for _, sw := range unit.Switches {
		for i := range sw.Cases {
			c := &sw.Cases[i]
			// label-only cascades are legitimate fallthrough
			if c.Empty || c.Terminated || c.Fallthrough {
				continue
			}
			if c.IsDefault {
				out = s.emit(out, RuleSwitchDefault, c.LastStmt,
					"default case must end with a break statement", "")
				continue
			}
			out = s.emit(out, RuleSwitchFallthrough, c.LastStmt, "", "")
		}
		if !sw.HasDefault() {
			out = s.emit(out, RuleSwitchDefault, sw.Location, "", "")
		}
	}
	return out
}
