// Package frontend adapts a tree-sitter C++ parse into the checker's source
// unit model. It is the only package that touches the parser; evaluators see
// plain declarations, statements and token spans.
package frontend

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/viant/afs"

	"github.com/conformd/cxxlint/model"
)

// Inspector parses C++ sources and extracts declarations, statements and
// token spans into a SourceUnit.
type Inspector struct {
	fs afs.Service
}

// NewInspector creates a C++ inspector
func NewInspector() *Inspector {
	return &Inspector{fs: afs.New()}
}

// InspectFile parses one source file into a SourceUnit. The path may be a
// local file path or any URL scheme the file service supports.
func (i *Inspector) InspectFile(ctx context.Context, location string) (*model.SourceUnit, error) {
	src, err := i.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return i.InspectSource(ctx, src, location)
}

// InspectSource parses C++ source from a byte slice. A tree with parse
// errors still yields a unit; it is marked partial and extraction covers
// whatever parsed.
func (i *Inspector) InspectSource(ctx context.Context, src []byte, path string) (*model.SourceUnit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	root := tree.RootNode()

	ex := &extractor{
		unit:  &model.SourceUnit{Path: path, Partial: root.HasError()},
		src:   src,
		lines: strings.Split(string(src), "\n"),
	}
	ex.walk(root, scopeGlobal, "")
	return ex.unit, nil
}

type scope int

const (
	scopeGlobal scope = iota
	scopeClass
	scopeLocal
)

// extractor accumulates unit contents during a single tree walk
type extractor struct {
	unit  *model.SourceUnit
	src   []byte
	lines []string
}

// walk dispatches on node type. enclosing carries the class name while
// walking a class body so methods and fields are attributed to it.
func (e *extractor) walk(node *sitter.Node, sc scope, enclosing string) {
	switch node.Type() {
	case "class_specifier", "struct_specifier":
		e.extractClass(node, false)
		return
	case "template_declaration":
		e.extractTemplate(node)
		return
	case "function_definition":
		e.extractFunction(node, enclosing)
		// keep walking for the body statements
	case "declaration":
		e.extractDeclaration(node, sc, enclosing)
	case "preproc_def", "preproc_function_def":
		e.extractMacro(node, sc)
	case "enum_specifier":
		e.extractEnum(node)
	case "switch_statement":
		e.extractSwitch(node)
	case "if_statement":
		e.extractIf(node)
	case "compound_statement", "field_declaration_list", "enumerator_list":
		e.extractBrace(node)
	case "comment":
		e.unit.Comments = append(e.unit.Comments, model.Comment{
			Text:     node.Content(e.src),
			Location: e.location(node),
		})
		return
	case "string_literal", "raw_string_literal":
		e.unit.Strings = append(e.unit.Strings, model.StringLit{
			Text:     node.Content(e.src),
			Location: e.location(node),
		})
		return
	case "identifier", "field_identifier", "type_identifier":
		e.unit.Idents = append(e.unit.Idents, model.Ident{
			Name:     node.Content(e.src),
			Location: e.location(node),
		})
		return
	case "call_expression":
		e.extractDeref(node)
	}

	next := sc
	if node.Type() == "compound_statement" {
		next = scopeLocal
	}
	for idx := 0; idx < int(node.ChildCount()); idx++ {
		child := node.Child(idx)
		if child.IsNamed() {
			e.walk(child, next, enclosing)
		}
	}
}

// location converts a node span to a 1-based source location
func (e *extractor) location(node *sitter.Node) model.Location {
	start := node.StartPoint()
	end := node.EndPoint()
	return model.Location{
		Path:      e.unit.Path,
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

// line returns the raw source text of a 1-based line number
func (e *extractor) line(number int) string {
	if number < 1 || number > len(e.lines) {
		return ""
	}
	return e.lines[number-1]
}
