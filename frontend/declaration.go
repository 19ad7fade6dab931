package frontend

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/conformd/cxxlint/model"
)

// extractClass handles class_specifier and struct_specifier nodes. Forward
// declarations carry no body and are ignored: they contribute no chain
// information and must never be guessed about.
func (e *extractor) extractClass(node *sitter.Node, isTemplate bool) {
	nameNode := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if nameNode == nil || body == nil {
		return
	}
	name := nameNode.Content(e.src)

	kind := model.KindClass
	if node.Type() == "struct_specifier" {
		kind = model.KindStruct
	}

	class := &model.Class{
		Name:       name,
		Kind:       kind,
		IsTemplate: isTemplate,
		Reflected:  classReflected(body.Content(e.src)),
		Location:   e.location(node),
	}

	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		child := node.NamedChild(idx)
		if child.Type() != "base_class_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			base := child.NamedChild(j)
			switch base.Type() {
			case "type_identifier", "qualified_identifier", "template_type":
				baseName, _ := model.SplitTemplate(base.Content(e.src))
				class.Bases = append(class.Bases, baseName)
			}
		}
	}

	for idx := 0; idx < int(body.NamedChildCount()); idx++ {
		child := body.NamedChild(idx)
		if child.Type() != "field_declaration" {
			continue
		}
		e.extractField(child, class)
	}

	e.unit.Classes = append(e.unit.Classes, class)

	e.extractBrace(body)
	for idx := 0; idx < int(body.NamedChildCount()); idx++ {
		child := body.NamedChild(idx)
		e.walk(child, scopeClass, name)
	}
}

// extractField handles one field_declaration inside a class body: either a
// data member or a method declaration without a body.
func (e *extractor) extractField(node *sitter.Node, class *model.Class) {
	ref := e.typeRef(node)
	name, isPtr, isRef, fnDecl := e.unwrapDeclarator(node.ChildByFieldName("declarator"))
	ref.IsPointer = ref.IsPointer || isPtr
	ref.IsReference = ref.IsReference || isRef

	if fnDecl != nil {
		e.unit.Funcs = append(e.unit.Funcs, e.buildFunction(node, fnDecl, name, ref, class.Name))
		return
	}
	if name == "" {
		return
	}
	loc := e.location(node)
	class.Fields = append(class.Fields, model.Field{
		Name:      name,
		Type:      ref,
		Reflected: e.fieldReflected(loc.Line),
		Location:  loc,
	})
}

// extractTemplate peels a template_declaration and forwards its payload
func (e *extractor) extractTemplate(node *sitter.Node) {
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		child := node.NamedChild(idx)
		switch child.Type() {
		case "class_specifier", "struct_specifier":
			e.extractClass(child, true)
		default:
			e.walk(child, scopeGlobal, "")
		}
	}
}

// extractFunction handles function_definition nodes, free or member
func (e *extractor) extractFunction(node *sitter.Node, enclosing string) {
	ref := e.typeRef(node)
	name, isPtr, isRef, fnDecl := e.unwrapDeclarator(node.ChildByFieldName("declarator"))
	if fnDecl == nil || name == "" {
		return
	}
	ref.IsPointer = ref.IsPointer || isPtr
	ref.IsReference = ref.IsReference || isRef

	// out-of-line member definitions carry the class in a qualified name
	if enclosing == "" {
		if idx := strings.LastIndex(name, "::"); idx > 0 {
			enclosing = name[:idx]
			name = name[idx+2:]
		}
	}
	e.unit.Funcs = append(e.unit.Funcs, e.buildFunction(node, fnDecl, name, ref, enclosing))
}

func (e *extractor) buildFunction(node, fnDecl *sitter.Node, name string, returns model.TypeRef, class string) *model.Function {
	fn := &model.Function{
		Name:     name,
		Class:    class,
		Returns:  returns,
		Location: e.location(node),
	}
	for idx := 0; idx < int(node.ChildCount()); idx++ {
		child := node.Child(idx)
		switch child.Type() {
		case "virtual", "virtual_function_specifier":
			fn.IsVirtual = true
		case "storage_class_specifier":
			if child.Content(e.src) == "static" {
				fn.IsStatic = true
			}
		}
	}
	params := fnDecl.ChildByFieldName("parameters")
	if params == nil {
		return fn
	}
	for idx := 0; idx < int(params.NamedChildCount()); idx++ {
		paramNode := params.NamedChild(idx)
		switch paramNode.Type() {
		case "parameter_declaration", "optional_parameter_declaration":
		default:
			continue
		}
		ref := e.typeRef(paramNode)
		pname, isPtr, isRef, _ := e.unwrapDeclarator(paramNode.ChildByFieldName("declarator"))
		ref.IsPointer = ref.IsPointer || isPtr
		ref.IsReference = ref.IsReference || isRef
		fn.Params = append(fn.Params, model.Param{
			Name:     pname,
			Type:     ref,
			Location: e.location(paramNode),
		})
	}
	return fn
}

// extractDeclaration handles declaration nodes outside class bodies:
// variables at any scope and function prototypes.
func (e *extractor) extractDeclaration(node *sitter.Node, sc scope, enclosing string) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	base := e.typeRef(node)
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		child := node.NamedChild(idx)
		switch child.Type() {
		case "init_declarator", "identifier", "pointer_declarator",
			"reference_declarator", "function_declarator", "array_declarator":
		default:
			continue
		}
		ref := base
		name, isPtr, isRef, fnDecl := e.unwrapDeclarator(child)
		ref.IsPointer = ref.IsPointer || isPtr
		ref.IsReference = ref.IsReference || isRef
		if fnDecl != nil {
			if name != "" {
				e.unit.Funcs = append(e.unit.Funcs, e.buildFunction(node, fnDecl, name, ref, enclosing))
			}
			continue
		}
		if name == "" {
			continue
		}
		e.unit.Vars = append(e.unit.Vars, &model.Variable{
			Name:     name,
			Type:     ref,
			Location: e.location(child),
		})
	}
}

func (e *extractor) extractMacro(node *sitter.Node, sc scope) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	e.unit.Macros = append(e.unit.Macros, &model.Macro{
		Name:        nameNode.Content(e.src),
		GlobalScope: sc == scopeGlobal,
		Location:    e.location(node),
	})
}

func (e *extractor) extractEnum(node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	scoped := false
	for idx := 0; idx < int(node.ChildCount()); idx++ {
		text := node.Child(idx).Type()
		if text == "class" || text == "struct" {
			scoped = true
		}
	}
	e.unit.Enums = append(e.unit.Enums, &model.Enum{
		Name:     nameNode.Content(e.src),
		Scoped:   scoped,
		Location: e.location(node),
	})
}

// typeRef builds a TypeRef from a declaration-like node's type and qualifiers
func (e *extractor) typeRef(node *sitter.Node) model.TypeRef {
	var ref model.TypeRef
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return ref
	}
	raw := strings.Join(strings.Fields(typeNode.Content(e.src)), " ")
	ref.Raw = raw
	ref.Name, ref.Arg = model.SplitTemplate(raw)
	for idx := 0; idx < int(node.NamedChildCount()); idx++ {
		child := node.NamedChild(idx)
		if child.Type() == "type_qualifier" && child.Content(e.src) == "const" {
			ref.IsConst = true
		}
	}
	return ref
}

// unwrapDeclarator walks a declarator chain down to its identifier, noting
// pointer/reference wrapping and whether a function declarator is involved.
func (e *extractor) unwrapDeclarator(node *sitter.Node) (name string, isPtr, isRef bool, fnDecl *sitter.Node) {
	for node != nil {
		switch node.Type() {
		case "pointer_declarator":
			isPtr = true
			node = declaratorChild(node)
		case "reference_declarator":
			isRef = true
			node = declaratorChild(node)
		case "init_declarator", "array_declarator", "optional_parameter_declaration":
			node = declaratorChild(node)
		case "function_declarator":
			fnDecl = node
			node = node.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			node = node.NamedChild(0)
		case "identifier", "field_identifier", "type_identifier":
			return node.Content(e.src), isPtr, isRef, fnDecl
		case "qualified_identifier", "operator_name", "destructor_name":
			return node.Content(e.src), isPtr, isRef, fnDecl
		default:
			return "", isPtr, isRef, fnDecl
		}
	}
	return "", isPtr, isRef, fnDecl
}

// declaratorChild resolves the nested declarator of a wrapping node
func declaratorChild(node *sitter.Node) *sitter.Node {
	if child := node.ChildByFieldName("declarator"); child != nil {
		return child
	}
	if count := int(node.NamedChildCount()); count > 0 {
		return node.NamedChild(count - 1)
	}
	return nil
}

// classReflected reports whether a class body carries a reflection marker
func classReflected(body string) bool {
	return strings.Contains(body, "GENERATED_BODY") || strings.Contains(body, "GENERATED_UCLASS_BODY")
}

// fieldReflected reports whether the field at the given 1-based line sits
// under a reflection property marker on the same or the two preceding lines.
func (e *extractor) fieldReflected(line int) bool {
	for l := line; l >= line-2 && l >= 1; l-- {
		if strings.Contains(e.line(l), "UPROPERTY(") {
			return true
		}
	}
	return false
}
