// Package outline reads the file-level structure of Java source with
// tree-sitter: the package, the imports and the top-level type names.
//
// The line parser documents only the first top-level declaration of a file;
// the outline lets callers see what else the file declares.
package outline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// typeKinds maps top-level declaration node types to a display kind.
var typeKinds = map[string]string{
	"class_declaration":           "class",
	"interface_declaration":       "interface",
	"enum_declaration":            "enum",
	"record_declaration":          "record",
	"annotation_type_declaration": "annotation",
}

// TypeDecl is a top-level type declaration.
type TypeDecl struct {
	Kind string
	Name string
	Line int
}

func (t TypeDecl) String() string {
	return fmt.Sprintf("%s %s (line %d)", t.Kind, t.Name, t.Line)
}

// Outline is the file-level structure of one source file.
type Outline struct {
	Package string
	Imports []string
	Types   []TypeDecl

	// Partial is set when tree-sitter recovered from syntax errors; the
	// outline may then miss declarations.
	Partial bool
}

// Parser parses Java outlines. A Parser is not safe for concurrent use.
type Parser struct {
	p *sitter.Parser
}

// NewParser creates a parser for Java source.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{p: p}
}

// Parse builds the outline of source.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Outline, error) {
	tree, err := p.p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing java: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	o := &Outline{Partial: root.HasError()}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			o.Package = qualifiedName(child, source)
		case "import_declaration":
			if name := importName(child, source); name != "" {
				o.Imports = append(o.Imports, name)
			}
		default:
			kind, ok := typeKinds[child.Type()]
			if !ok {
				continue
			}
			name := child.ChildByFieldName("name")
			if name == nil {
				continue
			}
			o.Types = append(o.Types, TypeDecl{
				Kind: kind,
				Name: NodeText(name, source),
				Line: int(child.StartPoint().Row) + 1,
			})
		}
	}
	return o, nil
}

// Folded returns the top-level types after the first one.
func (o *Outline) Folded() []TypeDecl {
	if len(o.Types) < 2 {
		return nil
	}
	return o.Types[1:]
}

// qualifiedName returns the dotted name held by a package or import node.
func qualifiedName(node *sitter.Node, source []byte) string {
	var name string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
			name = NodeText(child, source)
		}
	}
	return CollapseWhitespace(name)
}

// importName renders an import as written, without the keyword and the
// semicolon: "java.util.List", "static org.junit.Assert.*".
func importName(node *sitter.Node, source []byte) string {
	text := CollapseWhitespace(NodeText(node, source))
	text = strings.TrimPrefix(text, "import ")
	text = strings.TrimSuffix(text, ";")
	return strings.TrimSpace(text)
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
