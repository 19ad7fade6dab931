package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/conformd/cxxlint/model"
)

const (
	RuleGCMember      = "pointer-gc-member"
	RuleWeakUnguarded = "pointer-weak-unguarded"
	RuleWrapperParam  = "pointer-wrapper-param"
	RuleStrongCycle   = "pointer-strong-cycle"
)

func init() {
	register(Definition{
		ID:       RuleGCMember,
		Category: model.CategoryPointerUsage,
		Severity: model.SeverityWarning,
		Summary:  "raw pointer member to a garbage-collected type risks a dangling reference",
	})
	register(Definition{
		ID:         RuleWeakUnguarded,
		Category:   model.CategoryPointerUsage,
		Severity:   model.SeverityWarning,
		Summary:    "weak reference dereferenced without a validity check",
		Suggestion: "guard the access with IsValid() or a null check in the same statement or enclosing condition",
	})
	register(Definition{
		ID:         RuleWrapperParam,
		Category:   model.CategoryPointerUsage,
		Severity:   model.SeverityWarning,
		Summary:    "function boundaries should pass plain pointers or references, not ownership wrappers",
		Suggestion: "take or return a raw pointer/reference and keep the wrapper at the owning member",
	})
	register(Definition{
		ID:       RuleStrongCycle,
		Category: model.CategoryPointerUsage,
		Severity: model.SeverityError,
		Summary:  "strong ownership cycle keeps both objects alive forever",
	})
}

func evalPointerUsage(unit *model.SourceUnit, s Settings, o Options) []model.Finding {
	var out []model.Finding

	for _, class := range unit.Classes {
		for _, field := range class.Fields {
			if !field.Type.IsPointer || !isGCType(unit, field.Type.Name, o) {
				continue
			}
			want := o.StrongWrapper
			if class.Reflected {
				want = o.ReflectedWrapper
			}
			out = s.emit(out, RuleGCMember, field.Location,
				fmt.Sprintf("member %q holds a raw pointer to garbage-collected type %q", field.Name, field.Type.Name),
				fmt.Sprintf("use %s<%s> for ownership or %s<%s> for a non-owning reference",
					want, field.Type.Name, o.WeakWrapper, field.Type.Name))
		}
	}

	weak := weakNames(unit, o)
	for _, deref := range unit.Derefs {
		if !weak[deref.Object] || deref.Guarded {
			continue
		}
		out = s.emit(out, RuleWeakUnguarded, deref.Location,
			fmt.Sprintf("%q may have been collected at this access", deref.Object), "")
	}

	wrappers := map[string]bool{
		o.ReflectedWrapper: true,
		o.StrongWrapper:    true,
		o.WeakWrapper:      true,
	}
	for _, fn := range unit.Funcs {
		if wrappers[fn.Returns.Name] {
			out = s.emit(out, RuleWrapperParam, fn.Location,
				fmt.Sprintf("function %q returns %s", fn.Name, fn.Returns.Name), "")
		}
		for _, p := range fn.Params {
			if wrappers[p.Type.Name] {
				out = s.emit(out, RuleWrapperParam, p.Location,
					fmt.Sprintf("parameter %q of %q is typed %s", p.Name, fn.Name, p.Type.Name), "")
			}
		}
	}

	out = append(out, strongCycles(unit, s, o)...)
	return out
}

// isGCType reports whether a type name refers to a garbage-collected entity.
// Types declared in the unit are resolved through their base-class chain;
// external types fall back to the configured naming convention.
func isGCType(unit *model.SourceUnit, name string, o Options) bool {
	if class := unit.LookupClass(name); class != nil {
		return chainReachesGCRoot(unit, class, o, map[string]bool{})
	}
	for _, prefix := range o.GCNamePrefixes {
		if len(name) > len(prefix) && strings.HasPrefix(name, prefix) &&
			unicode.IsUpper(rune(name[len(prefix)])) {
			return true
		}
	}
	return false
}

func chainReachesGCRoot(unit *model.SourceUnit, class *model.Class, o Options, seen map[string]bool) bool {
	if seen[class.Name] {
		return false
	}
	seen[class.Name] = true
	for _, base := range class.Bases {
		if prefix, ok := o.ClassRoots[base]; ok {
			for _, gc := range o.GCNamePrefixes {
				if prefix == gc {
					return true
				}
			}
			continue
		}
		if bc := unit.LookupClass(base); bc != nil && chainReachesGCRoot(unit, bc, o, seen) {
			return true
		}
	}
	return false
}

// weakNames collects member and variable names that are declared through the
// weak-reference wrapper in this unit.
func weakNames(unit *model.SourceUnit, o Options) map[string]bool {
	names := map[string]bool{}
	for _, class := range unit.Classes {
		for _, field := range class.Fields {
			if field.Type.Name == o.WeakWrapper {
				names[field.Name] = true
			}
		}
	}
	for _, v := range unit.Vars {
		if v.Type.Name == o.WeakWrapper {
			names[v.Name] = true
		}
	}
	return names
}

// strongCycles flags strong-ownership wrappers whose target type transitively
// holds a strong wrapper back to the origin. Only types declared in the unit
// participate; an external target cannot be proven cyclic.
func strongCycles(unit *model.SourceUnit, s Settings, o Options) []model.Finding {
	edges := map[string][]string{}
	for _, class := range unit.Classes {
		for _, field := range class.Fields {
			if field.Type.Name == o.StrongWrapper && field.Type.Arg != "" {
				edges[class.Name] = append(edges[class.Name], field.Type.Arg)
			}
		}
	}

	var reaches func(from, target string, seen map[string]bool) bool
	reaches = func(from, target string, seen map[string]bool) bool {
		if from == target {
			return true
		}
		if seen[from] || unit.LookupClass(from) == nil {
			return false
		}
		seen[from] = true
		for _, next := range edges[from] {
			if reaches(next, target, seen) {
				return true
			}
		}
		return false
	}

	var out []model.Finding
	for _, class := range unit.Classes {
		for _, field := range class.Fields {
			if field.Type.Name != o.StrongWrapper || field.Type.Arg == "" {
				continue
			}
			if reaches(field.Type.Arg, class.Name, map[string]bool{}) {
				out = s.emit(out, RuleStrongCycle, field.Location,
					fmt.Sprintf("member %q completes a strong ownership cycle %s -> %s -> %s",
						field.Name, class.Name, field.Type.Arg, class.Name),
					fmt.Sprintf("break the cycle with %s on one side", o.WeakWrapper))
			}
		}
	}
	return out
}
