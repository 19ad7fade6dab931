package frontend

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/conformd/cxxlint/model"
)

// transferTypes are statement kinds that unconditionally leave a case block
var transferTypes = map[string]bool{
	"break_statement":    true,
	"return_statement":   true,
	"continue_statement": true,
	"goto_statement":     true,
	"throw_statement":    true,
}

func (e *extractor) extractSwitch(node *sitter.Node) {
	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	sw := &model.Switch{Location: e.location(node)}
	for idx := 0; idx < int(body.NamedChildCount()); idx++ {
		child := body.NamedChild(idx)
		if child.Type() != "case_statement" {
			continue
		}
		sw.Cases = append(sw.Cases, e.extractCase(child))
	}
	if len(sw.Cases) == 0 {
		return
	}
	e.unit.Switches = append(e.unit.Switches, sw)
}

// extractCase classifies one case block: its statements, whether the last
// one transfers control, and whether an explicit fallthrough marker follows.
func (e *extractor) extractCase(node *sitter.Node) model.CaseBlock {
	block := model.CaseBlock{Location: e.location(node)}

	value := node.ChildByFieldName("value")
	if value != nil {
		block.Labels = append(block.Labels, value.Content(e.src))
	} else {
		block.IsDefault = true
	}

	var statements []*sitter.Node
	sawFallthroughMark := false
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		child := node.NamedChild(idx)
		if value != nil && child.Equal(value) {
			continue
		}
		if child.Type() == "comment" {
			if isFallthroughText(child.Content(e.src)) {
				sawFallthroughMark = true
			}
			continue
		}
		statements = append(statements, child)
	}

	if len(statements) == 0 {
		block.Empty = true
		block.LastStmt = block.Location
		return block
	}

	last := statements[len(statements)-1]
	block.LastStmt = e.location(last)
	block.Terminated = isTransfer(last, e.src)
	block.Fallthrough = sawFallthroughMark || isFallthroughStmt(last, e.src) || e.trailingFallthroughComment(node)
	return block
}

// isTransfer reports whether a statement unconditionally transfers control.
// A braced block transfers when its own last statement does.
func isTransfer(node *sitter.Node, src []byte) bool {
	if transferTypes[node.Type()] {
		return true
	}
	if node.Type() == "expression_statement" && strings.HasPrefix(node.Content(src), "throw") {
		return true
	}
	if node.Type() == "compound_statement" {
		var last *sitter.Node
		for idx := 0; idx < int(node.NamedChildCount()); idx++ {
			child := node.NamedChild(idx)
			if child.Type() == "comment" {
				continue
			}
			last = child
		}
		if last != nil {
			return isTransfer(last, src)
		}
	}
	return false
}

func isFallthroughStmt(node *sitter.Node, src []byte) bool {
	text := node.Content(src)
	return strings.Contains(text, "[[fallthrough]]") || isFallthroughText(text)
}

// trailingFallthroughComment checks for a marker comment between this case
// and the next label.
func (e *extractor) trailingFallthroughComment(node *sitter.Node) bool {
	next := node.NextNamedSibling()
	if next != nil && next.Type() == "comment" {
		return isFallthroughText(next.Content(e.src))
	}
	return false
}

func isFallthroughText(text string) bool {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "fall") {
		return false
	}
	return strings.Contains(lower, "through") || strings.Contains(lower, "thru")
}

// extractIf records the arms of one if statement. An "else if" arm is left
// to the nested if statement visited later in the walk.
func (e *extractor) extractIf(node *sitter.Node) {
	consequence := node.ChildByFieldName("consequence")
	if consequence != nil {
		e.unit.IfArms = append(e.unit.IfArms, model.IfArm{
			Compound: consequence.Type() == "compound_statement",
			Location: e.location(consequence),
		})
	}
	alternative := node.ChildByFieldName("alternative")
	if alternative == nil {
		return
	}
	arm := alternative
	if arm.Type() == "else_clause" {
		if arm.NamedChildCount() == 0 {
			return
		}
		arm = arm.NamedChild(0)
	}
	if arm.Type() == "if_statement" {
		return
	}
	e.unit.IfArms = append(e.unit.IfArms, model.IfArm{
		Else:     true,
		Compound: arm.Type() == "compound_statement",
		Location: e.location(arm),
	})
}

// braceContexts maps a block's parent node type to the construct reported in
// brace-placement findings. Blocks in other contexts (lambdas, initializer
// lists) are not subject to the rule.
var braceContexts = map[string]string{
	"function_definition":  "function",
	"if_statement":         "if",
	"else_clause":          "else",
	"for_statement":        "for",
	"for_range_loop":       "for",
	"while_statement":      "while",
	"do_statement":         "do",
	"switch_statement":     "switch",
	"case_statement":       "case",
	"class_specifier":      "class",
	"struct_specifier":     "struct",
	"enum_specifier":       "enum",
	"namespace_definition": "namespace",
	"try_statement":        "try",
	"catch_clause":         "catch",
}

// extractBrace records the opening brace of a block-like node when its
// context is subject to the brace-placement rule.
func (e *extractor) extractBrace(node *sitter.Node) {
	parent := node.Parent()
	if parent == nil {
		return
	}
	context, ok := braceContexts[parent.Type()]
	if !ok {
		return
	}
	var brace *sitter.Node
	for idx := 0; idx < int(node.ChildCount()); idx++ {
		child := node.Child(idx)
		if child.Type() == "{" {
			brace = child
			break
		}
	}
	if brace == nil {
		return
	}
	loc := e.location(brace)
	prefix := ""
	if text := e.line(loc.Line); loc.Column-1 <= len(text) {
		prefix = text[:loc.Column-1]
	}
	e.unit.Braces = append(e.unit.Braces, model.Brace{
		OwnLine:  strings.TrimSpace(prefix) == "",
		Context:  context,
		Location: loc,
	})
}

// deref member calls that read through a weak reference
var derefCalls = map[string]bool{"Get": true, "Pin": true}

// extractDeref records member accesses that dereference a named object and
// whether a validity check guards them.
func (e *extractor) extractDeref(node *sitter.Node) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Type() != "field_expression" {
		return
	}
	object := fn.ChildByFieldName("argument")
	field := fn.ChildByFieldName("field")
	if object == nil || field == nil {
		return
	}
	switch object.Type() {
	case "identifier", "field_identifier":
	default:
		return
	}
	name := object.Content(e.src)
	fieldName := field.Content(e.src)
	if fieldName == "IsValid" {
		return
	}
	arrow := false
	for idx := 0; idx < int(fn.ChildCount()); idx++ {
		if fn.Child(idx).Type() == "->" {
			arrow = true
		}
	}
	if !arrow && !derefCalls[fieldName] {
		return
	}
	e.unit.Derefs = append(e.unit.Derefs, model.Deref{
		Object:   name,
		Guarded:  e.guarded(node, name),
		Location: e.location(node),
	})
}

// guarded reports whether a validity check for the object appears in the
// same statement or in the condition of an enclosing branch.
func (e *extractor) guarded(node *sitter.Node, name string) bool {
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "if_statement", "while_statement", "conditional_expression":
			if cond := p.ChildByFieldName("condition"); cond != nil &&
				strings.Contains(cond.Content(e.src), name) {
				return true
			}
		case "expression_statement", "declaration", "init_declarator":
			text := p.Content(e.src)
			if strings.Contains(text, name+".IsValid()") ||
				strings.Contains(text, "IsValid("+name+")") ||
				strings.Contains(text, name+" != nullptr") ||
				strings.Contains(text, name+" == nullptr") {
				return true
			}
		case "function_definition":
			return false
		}
	}
	return false
}
