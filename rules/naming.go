package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/conformd/cxxlint/model"
)

const (
	RuleClassPrefix  = "naming-class-prefix"
	RuleBoolPrefix   = "naming-bool-prefix"
	RuleBoolFunction = "naming-bool-function"
	RuleOutputParam  = "naming-output-param"
	RuleMacroPrefix  = "naming-macro-prefix"
)

func init() {
	register(Definition{
		ID:       RuleClassPrefix,
		Category: model.CategoryNaming,
		Severity: model.SeverityWarning,
		Summary:  "type name lacks the prefix implied by its base type",
	})
	register(Definition{
		ID:         RuleBoolPrefix,
		Category:   model.CategoryNaming,
		Severity:   model.SeverityWarning,
		Summary:    "boolean name must carry the 'b' prefix",
		Suggestion: "rename with a leading 'b', e.g. bIsReady",
	})
	register(Definition{
		ID:         RuleBoolFunction,
		Category:   model.CategoryNaming,
		Severity:   model.SeverityWarning,
		Summary:    "boolean-returning function should read as a yes/no question",
		Suggestion: "start the name with Is, Has, Can, Should or Try",
	})
	register(Definition{
		ID:         RuleOutputParam,
		Category:   model.CategoryNaming,
		Severity:   model.SeverityWarning,
		Summary:    "mutable reference parameter must be named as an output",
		Suggestion: "prefix the parameter with Out or InOut (bOut/bInOut for booleans)",
	})
	register(Definition{
		ID:       RuleMacroPrefix,
		Category: model.CategoryNaming,
		Severity: model.SeverityWarning,
		Summary:  "globally scoped macro lacks the required prefix",
	})
}

func evalNaming(unit *model.SourceUnit, s Settings, o Options) []model.Finding {
	var out []model.Finding

	for _, class := range unit.Classes {
		want, known := expectedClassPrefix(unit, class, o)
		if !known {
			// base chain unavailable in this unit, never guess
			continue
		}
		if !hasTypePrefix(class.Name, want) {
			out = s.emit(out, RuleClassPrefix, class.Location,
				fmt.Sprintf("%s %q should be prefixed with %q", class.Kind, class.Name, want),
				fmt.Sprintf("rename to %s%s", want, class.Name))
		}
	}
	for _, enum := range unit.Enums {
		if !hasTypePrefix(enum.Name, "E") {
			out = s.emit(out, RuleClassPrefix, enum.Location,
				fmt.Sprintf("enum %q should be prefixed with \"E\"", enum.Name),
				fmt.Sprintf("rename to E%s", enum.Name))
		}
	}

	for _, v := range unit.Vars {
		if v.Type.IsBool() && !hasBoolPrefix(v.Name) {
			out = s.emit(out, RuleBoolPrefix, v.Location,
				fmt.Sprintf("boolean variable %q lacks the 'b' prefix", v.Name), "")
		}
	}
	for _, class := range unit.Classes {
		for _, field := range class.Fields {
			if field.Type.IsBool() && !hasBoolPrefix(field.Name) {
				out = s.emit(out, RuleBoolPrefix, field.Location,
					fmt.Sprintf("boolean member %q lacks the 'b' prefix", field.Name), "")
			}
		}
	}

	for _, fn := range unit.Funcs {
		if fn.Returns.IsBool() && !isQuestionName(fn.Name, o.QuestionPrefixes) {
			out = s.emit(out, RuleBoolFunction, fn.Location,
				fmt.Sprintf("function %q returns bool but does not read as a question", fn.Name), "")
		}
		for _, p := range fn.Params {
			if !isOutputCandidate(p) {
				continue
			}
			if !hasOutputName(p) {
				out = s.emit(out, RuleOutputParam, p.Location,
					fmt.Sprintf("parameter %q of %q is written through a mutable reference", p.Name, fn.Name), "")
			}
		}
	}

	for _, macro := range unit.Macros {
		if macro.GlobalScope && !strings.HasPrefix(macro.Name, o.MacroPrefix) {
			out = s.emit(out, RuleMacroPrefix, macro.Location,
				fmt.Sprintf("macro %q should be prefixed with %q", macro.Name, o.MacroPrefix),
				fmt.Sprintf("rename to %s%s", o.MacroPrefix, macro.Name))
		}
	}
	return out
}

// expectedClassPrefix infers the required type prefix from the base-class
// chain. The chain is resolved strictly within the unit: a base that is
// neither a configured root nor declared here leaves the chain unknown and
// the rule is skipped for that declaration.
func expectedClassPrefix(unit *model.SourceUnit, class *model.Class, o Options) (string, bool) {
	if class.IsTemplate {
		return "T", true
	}
	seen := map[string]bool{class.Name: true}
	queue := append([]string(nil), class.Bases...)
	for len(queue) > 0 {
		base := queue[0]
		queue = queue[1:]
		if seen[base] {
			continue
		}
		seen[base] = true
		if prefix, ok := o.ClassRoots[base]; ok {
			return prefix, true
		}
		bc := unit.LookupClass(base)
		if bc == nil {
			return "", false
		}
		queue = append(queue, bc.Bases...)
	}
	// fully resolved chain with no recognized root: a plain type
	return "F", true
}

// hasTypePrefix reports whether name starts with prefix followed by an
// uppercase letter, so "Frame" does not satisfy an "F" prefix by accident.
func hasTypePrefix(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	if rest == "" {
		return false
	}
	return unicode.IsUpper(rune(rest[0]))
}

func hasBoolPrefix(name string) bool {
	return len(name) > 1 && name[0] == 'b' && unicode.IsUpper(rune(name[1]))
}

func isQuestionName(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if hasTypePrefix(name, prefix) || name == prefix {
			return true
		}
	}
	return false
}

// isOutputCandidate reports whether a parameter is written through: a
// non-const reference that is not itself a pointer type.
func isOutputCandidate(p model.Param) bool {
	return p.Type.IsReference && !p.Type.IsConst && !p.Type.IsPointer
}

func hasOutputName(p model.Param) bool {
	if p.Type.IsBool() {
		return strings.HasPrefix(p.Name, "bOut") || strings.HasPrefix(p.Name, "bInOut")
	}
	return strings.HasPrefix(p.Name, "Out") || strings.HasPrefix(p.Name, "InOut")
}
