package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conformd/cxxlint/model"
	"github.com/conformd/cxxlint/rules"
)

func defaultSettings(t *testing.T) rules.Settings {
	t.Helper()
	s, err := rules.NewSettings(nil)
	assert.NoError(t, err)
	return s
}

func findByRule(findings []model.Finding, id string) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if f.RuleID == id {
			out = append(out, f)
		}
	}
	return out
}

func TestNamingClassPrefix(t *testing.T) {
	settings := defaultSettings(t)
	opts := rules.NewOptions(nil)

	tests := []struct {
		name      string
		class     *model.Class
		wantCount int
	}{
		{
			name:      "actor descendant with prefix",
			class:     &model.Class{Name: "AEnemySpawner", Kind: model.KindClass, Bases: []string{"AActor"}},
			wantCount: 0,
		},
		{
			name:      "actor descendant without prefix",
			class:     &model.Class{Name: "EnemySpawner", Kind: model.KindClass, Bases: []string{"AActor"}},
			wantCount: 1,
		},
		{
			name:      "uobject descendant without prefix",
			class:     &model.Class{Name: "HealthComponent", Kind: model.KindClass, Bases: []string{"UObject"}},
			wantCount: 1,
		},
		{
			name:      "widget descendant with prefix",
			class:     &model.Class{Name: "SHealthBar", Kind: model.KindClass, Bases: []string{"SWidget"}},
			wantCount: 0,
		},
		{
			name:      "unknown base chain is skipped",
			class:     &model.Class{Name: "EnemySpawner", Kind: model.KindClass, Bases: []string{"FSomethingExternal"}},
			wantCount: 0,
		},
		{
			name:      "plain struct needs F",
			class:     &model.Class{Name: "Vector3", Kind: model.KindStruct},
			wantCount: 1,
		},
		{
			name:      "template needs T",
			class:     &model.Class{Name: "RingBuffer", Kind: model.KindClass, IsTemplate: true},
			wantCount: 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			unit := &model.SourceUnit{Path: "a.h", Classes: []*model.Class{tc.class}}
			findings := rules.Evaluate(unit, settings, opts)
			assert.Len(t, findByRule(findings, rules.RuleClassPrefix), tc.wantCount)
		})
	}
}

func TestNamingClassPrefixTransitiveChain(t *testing.T) {
	settings := defaultSettings(t)
	opts := rules.NewOptions(nil)

	unit := &model.SourceUnit{
		Path: "a.h",
		Classes: []*model.Class{
			{Name: "ABaseCharacter", Kind: model.KindClass, Bases: []string{"AActor"}},
			{Name: "EliteCharacter", Kind: model.KindClass, Bases: []string{"ABaseCharacter"}},
		},
	}
	findings := findByRule(rules.Evaluate(unit, settings, opts), rules.RuleClassPrefix)
	if assert.Len(t, findings, 1) {
		assert.Contains(t, findings[0].Message, "EliteCharacter")
		assert.Contains(t, findings[0].Message, `"A"`)
	}
}

func TestNamingBoolPrefix(t *testing.T) {
	settings := defaultSettings(t)
	opts := rules.NewOptions(nil)

	unit := &model.SourceUnit{
		Path: "a.cpp",
		Vars: []*model.Variable{
			{Name: "bIsReady", Type: model.TypeRef{Name: "bool"}},
			{Name: "ready", Type: model.TypeRef{Name: "bool"}},
			// never flagged for non-booleans regardless of name
			{Name: "ready", Type: model.TypeRef{Name: "int32"}},
			{Name: "bCount", Type: model.TypeRef{Name: "int32"}},
		},
	}
	findings := findByRule(rules.Evaluate(unit, settings, opts), rules.RuleBoolPrefix)
	if assert.Len(t, findings, 1) {
		assert.Contains(t, findings[0].Message, `"ready"`)
	}
}

func TestNamingBoolFunctionQuestion(t *testing.T) {
	settings := defaultSettings(t)
	opts := rules.NewOptions(nil)

	tests := []struct {
		fnName string
		want   bool
	}{
		{"CheckBuffer", true}, // does not read as a yes/no question
		{"IsVisible", false},
		{"HasAmmo", false},
		{"CanJump", false},
		{"ShouldTick", false},
		{"TryConnect", false},
		{"Isolate", true}, // "Is" must be a word prefix, not a fragment
	}
	for _, tc := range tests {
		t.Run(tc.fnName, func(t *testing.T) {
			unit := &model.SourceUnit{
				Path:  "a.cpp",
				Funcs: []*model.Function{{Name: tc.fnName, Returns: model.TypeRef{Name: "bool"}}},
			}
			findings := findByRule(rules.Evaluate(unit, settings, opts), rules.RuleBoolFunction)
			if tc.want {
				assert.Len(t, findings, 1)
			} else {
				assert.Empty(t, findings)
			}
		})
	}
}

func TestNamingOutputParams(t *testing.T) {
	settings := defaultSettings(t)
	opts := rules.NewOptions(nil)

	unit := &model.SourceUnit{
		Path: "a.cpp",
		Funcs: []*model.Function{{
			Name: "Resolve",
			Params: []model.Param{
				{Name: "OutResult", Type: model.TypeRef{Name: "FString", IsReference: true}},
				{Name: "Result", Type: model.TypeRef{Name: "FString", IsReference: true}},
				{Name: "Config", Type: model.TypeRef{Name: "FString", IsReference: true, IsConst: true}},
				{Name: "bOutHit", Type: model.TypeRef{Name: "bool", IsReference: true}},
				{Name: "bHit", Type: model.TypeRef{Name: "bool", IsReference: true}},
			},
		}},
	}
	findings := findByRule(rules.Evaluate(unit, settings, opts), rules.RuleOutputParam)
	assert.Len(t, findings, 2)
}

func TestNamingMacroPrefix(t *testing.T) {
	settings := defaultSettings(t)
	opts := rules.NewOptions(nil)

	unit := &model.SourceUnit{
		Path: "a.h",
		Macros: []*model.Macro{
			{Name: "UE_CHECK_SLOW", GlobalScope: true},
			{Name: "CHECK_SLOW", GlobalScope: true},
			{Name: "LOCAL_HELPER", GlobalScope: false}, // only global macros checked
		},
	}
	findings := findByRule(rules.Evaluate(unit, settings, opts), rules.RuleMacroPrefix)
	if assert.Len(t, findings, 1) {
		assert.Contains(t, findings[0].Message, "CHECK_SLOW")
	}
}

func TestNamingEnumPrefix(t *testing.T) {
	settings := defaultSettings(t)
	opts := rules.NewOptions(nil)

	unit := &model.SourceUnit{
		Path: "a.h",
		Enums: []*model.Enum{
			{Name: "EWeaponState", Scoped: true},
			{Name: "WeaponState", Scoped: true},
		},
	}
	findings := findByRule(rules.Evaluate(unit, settings, opts), rules.RuleClassPrefix)
	if assert.Len(t, findings, 1) {
		assert.Contains(t, findings[0].Message, `"WeaponState"`)
	}
}
