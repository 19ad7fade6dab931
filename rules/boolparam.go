package rules

import (
	"fmt"

	"github.com/conformd/cxxlint/model"
)

const RuleBoolParams = "bool-param-count"

func init() {
	register(Definition{
		ID:         RuleBoolParams,
		Category:   model.CategoryBooleanParam,
		Severity:   model.SeverityWarning,
		Summary:    "multiple boolean parameters are unreadable at the call site",
		Suggestion: "replace the booleans with a flags enumeration type",
	})
}

// evalBooleanParams flags functions taking two or more boolean parameters.
// A single boolean parameter is always exempt: it is taken to represent the
// complete state the function toggles.
func evalBooleanParams(unit *model.SourceUnit, s Settings, o Options) []model.Finding {
	var out []model.Finding
	for _, fn := range unit.Funcs {
		count := 0
		for _, p := range fn.Params {
			if p.Type.IsBool() {
				count++
			}
		}
		if count < 2 {
			continue
		}
		// exactly one finding per function regardless of how many booleans
		out = s.emit(out, RuleBoolParams, fn.Location,
			fmt.Sprintf("function %q takes %d boolean parameters", fn.Name, count), "")
	}
	return out
}
