// Package model defines the documentation model produced by the parser.
package model

// Modifier is the access level recorded for a declaration, field or method.
type Modifier string

const (
	Public         Modifier = "public"
	Protected      Modifier = "protected"
	Private        Modifier = "private"
	Strictfp       Modifier = "strictfp"
	PackagePrivate Modifier = "package-private"
)

// DeclKind distinguishes classes from interfaces.
type DeclKind string

const (
	Class     DeclKind = "class"
	Interface DeclKind = "interface"
)

// InterfaceParent is the Parent value recorded for interface declarations.
const InterfaceParent = "Interface"

// Link is a positional {@link} pair: the text leading up to the tag and the
// link target that follows it.
type Link struct {
	Text   string `yaml:"text"`
	Target string `yaml:"target"`
}

// Comment is a documentation comment block (/** ... */).
type Comment struct {
	Author      string   `yaml:"author,omitempty"`
	Version     string   `yaml:"version,omitempty"`
	Since       string   `yaml:"since,omitempty"`
	Deprecated  string   `yaml:"deprecated,omitempty"`
	See         string   `yaml:"see,omitempty"`
	Throws      string   `yaml:"throws,omitempty"`
	Exception   string   `yaml:"exception,omitempty"`
	Returns     string   `yaml:"returns,omitempty"`
	Params      []string `yaml:"params,omitempty"`
	Links       []Link   `yaml:"links,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// Field is a single field declaration.
type Field struct {
	Name    string   `yaml:"name"`
	Mod     Modifier `yaml:"mod"`
	Type    string   `yaml:"type"`
	Comment *Comment `yaml:"comment,omitempty"`
}

// Method is a single method declaration. Args is the raw parameter text.
type Method struct {
	Prototype  string   `yaml:"prototype"`
	Mod        Modifier `yaml:"mod"`
	Name       string   `yaml:"name"`
	Args       string   `yaml:"args"`
	ReturnType string   `yaml:"return_type"`
	Line       int      `yaml:"line"`
	Comment    *Comment `yaml:"comment,omitempty"`
}

// Declaration is a class or interface together with its members.
//
// Parent holds the superclass name, or InterfaceParent for interfaces.
// Only the first name of a comma-separated list is kept for Parent and
// Interface.
type Declaration struct {
	Kind      DeclKind `yaml:"kind"`
	Name      string   `yaml:"name"`
	Mod       Modifier `yaml:"mod"`
	Parent    string   `yaml:"parent,omitempty"`
	Interface string   `yaml:"interface,omitempty"`
	Line      int      `yaml:"line"`
	Methods   []Method `yaml:"methods,omitempty"`
	Fields    []Field  `yaml:"fields,omitempty"`
}

// IsInterface reports whether the declaration is an interface.
func (d *Declaration) IsInterface() bool {
	return d.Parent == InterfaceParent
}

// Diagnostic records a declaration header that was skipped while parsing.
type Diagnostic struct {
	Line   int    `yaml:"line"`
	Text   string `yaml:"text"`
	Reason string `yaml:"reason"`
}

// SourceFile is the parsed documentation of one Java source file.
type SourceFile struct {
	Name         string        `yaml:"name"`
	Path         string        `yaml:"path,omitempty"`
	Package      string        `yaml:"package,omitempty"`
	Imports      []string      `yaml:"imports,omitempty"`
	Declarations []Declaration `yaml:"declarations,omitempty"`
	Comments     []Comment     `yaml:"comments,omitempty"`
	Diagnostics  []Diagnostic  `yaml:"diagnostics,omitempty"`
}

// Project is the set of source files documented together.
type Project struct {
	Name  string
	Files []SourceFile
}
