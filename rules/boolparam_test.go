package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conformd/cxxlint/model"
	"github.com/conformd/cxxlint/rules"
)

func TestBooleanParameterCount(t *testing.T) {
	settings := defaultSettings(t)
	opts := rules.NewOptions(nil)

	boolParam := func(name string) model.Param {
		return model.Param{Name: name, Type: model.TypeRef{Name: "bool"}}
	}

	tests := []struct {
		name      string
		fn        *model.Function
		wantCount int
	}{
		{
			name:      "two booleans yield exactly one finding",
			fn:        &model.Function{Name: "Setup", Params: []model.Param{boolParam("bFast"), boolParam("bSafe")}},
			wantCount: 1,
		},
		{
			name: "still one finding beyond two booleans",
			fn: &model.Function{Name: "Configure", Params: []model.Param{
				boolParam("bFast"), boolParam("bSafe"), boolParam("bVerbose"), boolParam("bDry"),
			}},
			wantCount: 1,
		},
		{
			name:      "single boolean represents complete state",
			fn:        &model.Function{Name: "SetVisible", Params: []model.Param{boolParam("bVisible")}},
			wantCount: 0,
		},
		{
			name: "mixed parameters count booleans only",
			fn: &model.Function{Name: "Fire", Params: []model.Param{
				boolParam("bCharged"),
				{Name: "Power", Type: model.TypeRef{Name: "float"}},
			}},
			wantCount: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			unit := &model.SourceUnit{Path: "a.h", Funcs: []*model.Function{tc.fn}}
			findings := findByRule(rules.Evaluate(unit, settings, opts), rules.RuleBoolParams)
			assert.Len(t, findings, tc.wantCount)
			for _, f := range findings {
				assert.Equal(t, model.SeverityWarning, f.Severity)
				assert.Contains(t, f.Suggestion, "flags enumeration")
			}
		})
	}
}
