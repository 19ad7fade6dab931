package model

import "strings"

// Location identifies a source span within a unit. Line and Column are 1-based.
type Location struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty"`
}

// TypeRef describes a declared type as it appears in source, decomposed far
// enough for the rule evaluators: the outer type name, the first template
// argument (if any), and pointer/reference/const qualifiers.
type TypeRef struct {
	Raw         string // full spelling, e.g. "const TObjectPtr<UWidget>&"
	Name        string // outer name without template args, e.g. "TObjectPtr"
	Arg         string // first template argument name, e.g. "UWidget"
	IsPointer   bool
	IsReference bool
	IsConst     bool
}

// IsBool reports whether the type is a plain boolean
func (t TypeRef) IsBool() bool {
	return t.Name == "bool" && !t.IsPointer
}

// Param represents one function parameter
type Param struct {
	Name     string
	Type     TypeRef
	Location Location
}

// Function represents a free function or a class method
type Function struct {
	Name      string
	Class     string // enclosing class name, empty for free functions
	Returns   TypeRef
	Params    []Param
	IsVirtual bool
	IsStatic  bool
	Location  Location
}

// Field represents a class or struct member
type Field struct {
	Name      string
	Type      TypeRef
	Reflected bool // declared under a reflection property marker
	Location  Location
}

// ClassKind distinguishes class-like declarations
type ClassKind string

const (
	KindClass  ClassKind = "class"
	KindStruct ClassKind = "struct"
)

// Class represents a class or struct declaration with its base list
type Class struct {
	Name       string
	Kind       ClassKind
	Bases      []string
	Fields     []Field
	IsTemplate bool
	Reflected  bool // carries a reflection body marker
	Location   Location
}

// Variable represents a local or global variable declaration
type Variable struct {
	Name     string
	Type     TypeRef
	Location Location
}

// Enum represents an enum declaration
type Enum struct {
	Name     string
	Scoped   bool
	Location Location
}

// Macro represents an object-like or function-like preprocessor definition
type Macro struct {
	Name        string
	GlobalScope bool
	Location    Location
}

// SplitTemplate decomposes "TWeakObjectPtr<UWidget>" into ("TWeakObjectPtr", "UWidget").
// Nested template arguments keep only their outer name.
func SplitTemplate(name string) (outer, arg string) {
	idx := strings.IndexByte(name, '<')
	if idx < 0 {
		return name, ""
	}
	outer = strings.TrimSpace(name[:idx])
	inner := name[idx+1:]
	if end := strings.LastIndexByte(inner, '>'); end >= 0 {
		inner = inner[:end]
	}
	if comma := strings.IndexByte(inner, ','); comma >= 0 {
		inner = inner[:comma]
	}
	inner = strings.TrimSpace(inner)
	inner = strings.TrimRight(inner, "*& ")
	if nested := strings.IndexByte(inner, '<'); nested >= 0 {
		inner = inner[:nested]
	}
	return outer, strings.TrimSpace(inner)
}
