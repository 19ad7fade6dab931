package model

// CaseBlock represents one case (or default) label and its statements
type CaseBlock struct {
	Labels      []string
	IsDefault   bool
	Empty       bool // no statements, pure label cascade
	Terminated  bool // last statement unconditionally transfers control
	Fallthrough bool // explicit fallthrough marker follows the block
	LastStmt    Location
	Location    Location
}

// Switch represents a switch statement and its case blocks
type Switch struct {
	Cases    []CaseBlock
	Location Location
}

// HasDefault reports whether any case block is the default label
func (s *Switch) HasDefault() bool {
	for i := range s.Cases {
		if s.Cases[i].IsDefault {
			return true
		}
	}
	return false
}

// IfArm represents one arm of an if/else chain
type IfArm struct {
	Else     bool // arm introduced by "else" (not an "else if")
	Compound bool // arm body is a braced block
	Location Location
}

// Brace records an opening brace of a block-like construct
type Brace struct {
	OwnLine  bool   // brace is the first non-whitespace token on its line
	Context  string // construct the block belongs to, e.g. "function", "if"
	Location Location
}

// Comment is one line or block comment
type Comment struct {
	Text     string
	Location Location
}

// StringLit is one string literal
type StringLit struct {
	Text     string
	Location Location
}

// Ident is one identifier token occurrence
type Ident struct {
	Name     string
	Location Location
}

// Deref records a dereference of a named object, with whether the access is
// guarded by a validity check in the same statement or an enclosing condition.
type Deref struct {
	Object   string
	Guarded  bool
	Location Location
}

// SourceUnit is the extracted view of one translation unit. It is built once
// by the front end and never mutated afterwards; evaluators only read it.
type SourceUnit struct {
	Path    string
	Classes []*Class
	Funcs   []*Function
	Vars    []*Variable
	Enums   []*Enum
	Macros  []*Macro

	Switches []*Switch
	IfArms   []IfArm
	Braces   []Brace
	Comments []Comment
	Strings  []StringLit
	Idents   []Ident
	Derefs   []Deref

	// Partial is set when the parse tree contained errors; extraction covers
	// whatever parsed, and the unit is annotated as partial in reports.
	Partial bool

	classIndex map[string]int
}

// LookupClass returns the class declared in this unit under the given name
func (u *SourceUnit) LookupClass(name string) *Class {
	if u.classIndex == nil {
		u.classIndex = make(map[string]int, len(u.Classes))
		for i, c := range u.Classes {
			u.classIndex[c.Name] = i
		}
	}
	if idx, ok := u.classIndex[name]; ok && idx < len(u.Classes) {
		return u.Classes[idx]
	}
	return nil
}
