package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conformd/cxxlint/config"
	"github.com/conformd/cxxlint/model"
)

// Definition is one declarative rule: a stable id, the category whose
// evaluator enforces it, a default severity and the report texts.
type Definition struct {
	ID         string
	Category   model.Category
	Severity   model.Severity
	Summary    string
	Suggestion string
}

var (
	registry  []Definition
	ruleIndex = map[string]int{} // rule id -> registry index
)

func register(d Definition) {
	registry = append(registry, d)
	ruleIndex[d.ID] = len(registry) - 1
}

// Definitions returns all registered rules ordered by id
func Definitions() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns a rule definition by id
func Lookup(id string) (Definition, bool) {
	idx, ok := ruleIndex[strings.TrimSpace(id)]
	if !ok {
		return Definition{}, false
	}
	return registry[idx], true
}

// ForCategory returns the enabled rules of one category, ordered by id
func (s Settings) ForCategory(cat model.Category) []Definition {
	var out []Definition
	for _, d := range Definitions() {
		if d.Category != cat || s.disabled[d.ID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Settings is the validated, immutable view of the per-rule configuration
// applied on top of the registry for one run.
type Settings struct {
	disabled map[string]bool
	severity map[string]model.Severity
}

// NewSettings validates the configured rule overrides against the registry.
// Unknown rule ids and unparsable severities are configuration errors.
func NewSettings(cfg *config.Config) (Settings, error) {
	s := Settings{
		disabled: map[string]bool{},
		severity: map[string]model.Severity{},
	}
	if cfg == nil {
		return s, nil
	}
	for id, rc := range cfg.Rules {
		if _, ok := Lookup(id); !ok {
			return Settings{}, fmt.Errorf("unknown rule %q", id)
		}
		if rc.Enabled != nil && !*rc.Enabled {
			s.disabled[id] = true
		}
		if rc.Severity != "" {
			sev, err := model.ParseSeverity(rc.Severity)
			if err != nil {
				return Settings{}, fmt.Errorf("rule %q: %w", id, err)
			}
			s.severity[id] = sev
		}
	}
	return s, nil
}

// Enabled reports whether a rule is active for this run
func (s Settings) Enabled(id string) bool {
	if _, ok := Lookup(id); !ok {
		return false
	}
	return !s.disabled[id]
}

// SeverityOf returns the effective severity of a rule, honoring overrides
func (s Settings) SeverityOf(id string) model.Severity {
	if sev, ok := s.severity[id]; ok {
		return sev
	}
	d, _ := Lookup(id)
	return d.Severity
}

// emit appends a finding for the given rule unless the rule is disabled.
// Severity comes from the settings, message and suggestion default to the
// definition texts when the caller passes empty strings.
func (s Settings) emit(out []model.Finding, id string, loc model.Location, message, suggestion string) []model.Finding {
	d, ok := Lookup(id)
	if !ok || s.disabled[id] {
		return out
	}
	if message == "" {
		message = d.Summary
	}
	if suggestion == "" {
		suggestion = d.Suggestion
	}
	return append(out, model.Finding{
		RuleID:     id,
		Category:   d.Category,
		Severity:   s.SeverityOf(id),
		Location:   loc,
		Message:    message,
		Suggestion: suggestion,
	})
}

// Options carries the category policy knobs resolved from configuration
type Options struct {
	QuestionPrefixes []string
	MacroPrefix      string
	ClassRoots       map[string]string
	ReflectedWrapper string
	StrongWrapper    string
	WeakWrapper      string
	GCNamePrefixes   []string
	Terms            map[string]string
}

// NewOptions resolves evaluator options from configuration
func NewOptions(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.Default()
	}
	return Options{
		QuestionPrefixes: cfg.Naming.QuestionPrefixes,
		MacroPrefix:      cfg.Naming.MacroPrefix,
		ClassRoots:       cfg.Naming.ClassRoots,
		ReflectedWrapper: cfg.Pointers.ReflectedWrapper,
		StrongWrapper:    cfg.Pointers.StrongWrapper,
		WeakWrapper:      cfg.Pointers.WeakWrapper,
		GCNamePrefixes:   cfg.Pointers.GCNamePrefixes,
		Terms:            cfg.Terminology.Terms,
	}
}

// Evaluator inspects one source unit and emits findings for its category
type Evaluator func(unit *model.SourceUnit, s Settings, o Options) []model.Finding

// Evaluators returns all category evaluators. They hold no shared mutable
// state, so callers may run them concurrently over the same unit.
func Evaluators() []Evaluator {
	return []Evaluator{
		evalNaming,
		evalFormatting,
		evalPointerUsage,
		evalBooleanParams,
		evalTerminology,
	}
}

// Evaluate runs every category evaluator over one unit
func Evaluate(unit *model.SourceUnit, s Settings, o Options) []model.Finding {
	var out []model.Finding
	for _, eval := range Evaluators() {
		out = append(out, eval(unit, s, o)...)
	}
	return out
}
