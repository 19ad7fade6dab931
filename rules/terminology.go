package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/conformd/cxxlint/model"
)

const RuleTerminology = "terminology-denylist"

func init() {
	register(Definition{
		ID:       RuleTerminology,
		Category: model.CategoryTerminology,
		Severity: model.SeverityInfo,
		Summary:  "deny-listed term",
	})
}

// evalTerminology scans identifiers, comments and string literals for
// deny-listed terms. Identifiers match on a case-insensitive substring since
// words fuse in names; comments and literals match whole words only.
func evalTerminology(unit *model.SourceUnit, s Settings, o Options) []model.Finding {
	if len(o.Terms) == 0 {
		return nil
	}
	replacements := make(map[string]string, len(o.Terms))
	terms := make([]string, 0, len(o.Terms))
	for term, replacement := range o.Terms {
		lower := strings.ToLower(term)
		terms = append(terms, lower)
		replacements[lower] = replacement
	}
	sort.Strings(terms)

	wordPatterns := make(map[string]*regexp.Regexp, len(terms))
	for _, term := range terms {
		wordPatterns[term] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	}

	var out []model.Finding
	for _, ident := range unit.Idents {
		lower := strings.ToLower(ident.Name)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				out = s.emit(out, RuleTerminology, ident.Location,
					fmt.Sprintf("identifier %q contains %q", ident.Name, term),
					fmt.Sprintf("use %q instead", replacements[term]))
				break
			}
		}
	}
	for _, comment := range unit.Comments {
		out = scanText(out, s, replacements, wordPatterns, terms, comment.Text, "comment", comment.Location)
	}
	for _, lit := range unit.Strings {
		out = scanText(out, s, replacements, wordPatterns, terms, lit.Text, "string literal", lit.Location)
	}
	return out
}

func scanText(out []model.Finding, s Settings, replacements map[string]string, patterns map[string]*regexp.Regexp, terms []string, text, what string, loc model.Location) []model.Finding {
	for _, term := range terms {
		if patterns[term].MatchString(text) {
			out = s.emit(out, RuleTerminology, loc,
				fmt.Sprintf("%s contains %q", what, term),
				fmt.Sprintf("use %q instead", replacements[term]))
		}
	}
	return out
}
