// Package render turns the documentation model into HTML.
//
// Every function is pure: the same input always yields the same bytes.
// Code-like text (names, types, prototypes, file names) is escaped; comment
// text is authored HTML and passed through as is.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/phobologic/javadoc2html/internal/graph"
	"github.com/phobologic/javadoc2html/internal/model"
)

const style = `table.tbl { border-collapse: collapse; margin: 0.5em 0; }
table.tbl th, table.tbl td { border: 1px solid #999; padding: 0.2em 0.6em; text-align: left; }
p.left { margin: 0.2em 0; }
div.detblock { margin-left: 2em; }
code { white-space: pre-wrap; }`

// Comment renders a declaration or file comment as a block of paragraphs.
// A @see or {@link} target naming a documented type becomes a link.
func Comment(c *model.Comment, links *graph.Links) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	para := func(format string, args ...any) {
		b.WriteString(`<p class="left">`)
		fmt.Fprintf(&b, format, args...)
		b.WriteString("</p>\n")
	}

	if c.Author != "" {
		para("Author: %s", c.Author)
	}
	if c.Version != "" {
		para("Version: %s", c.Version)
	}
	if c.Since != "" {
		para("Available since version %s", c.Since)
	}
	if c.Deprecated != "" {
		para("Deprecated: %s", c.Deprecated)
	}
	if c.See != "" {
		para("Also see: %s", typeRef(c.See, links))
	}
	if c.Throws != "" {
		para("Throws: %s", c.Throws)
	}
	if c.Exception != "" {
		para("Exception: %s", c.Exception)
	}
	for _, ln := range c.Links {
		para("%s %s", ln.Text, typeRef(ln.Target, links))
	}
	if c.Description != "" {
		para("Description: %s", description(c.Description))
	}
	return b.String()
}

// CommentDetails renders the parts of a method comment shown in the method
// details section: description, parameters and return value.
func CommentDetails(c *model.Comment) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	if c.Description != "" {
		fmt.Fprintf(&b, "<p class=\"left\">%s</p>\n", description(c.Description))
	}
	if len(c.Params) > 0 {
		b.WriteString("<p class=\"left\"><i>Parameters:</i></p>\n")
		for _, p := range c.Params {
			fmt.Fprintf(&b, "<p class=\"left\">%s</p>\n", p)
		}
	}
	if c.Returns != "" {
		fmt.Fprintf(&b, "<p class=\"left\"><i>Returns</i> %s</p>\n", c.Returns)
	}
	if c.Throws != "" {
		fmt.Fprintf(&b, "<p class=\"left\"><i>Throws</i> %s</p>\n", c.Throws)
	}
	if c.Deprecated != "" {
		fmt.Fprintf(&b, "<p class=\"left\"><i>Deprecated</i> %s</p>\n", c.Deprecated)
	}
	return b.String()
}

// Field renders one row of the field table.
func Field(f *model.Field) string {
	var desc string
	if f.Comment != nil {
		desc = description(f.Comment.Description)
	}
	return fmt.Sprintf("<tr><td>%s</td><td>%s</td><td><code>%s</code></td><td>%s</td></tr>\n",
		esc(f.Name), f.Mod, esc(f.Type), desc)
}

// Method renders one row of the method summary table.
func Method(m *model.Method) string {
	var summary string
	switch {
	case m.Comment == nil:
		summary = "None"
	case m.Comment.Description != "":
		summary = description(m.Comment.Description)
	default:
		summary = "Returns " + m.Comment.Returns
	}
	return fmt.Sprintf("<tr><td><a href=\"#%s\">%s</a></td><td><code>%s</code></td><td>%s</td></tr>\n",
		methodAnchor(m), esc(m.Name), esc(m.Prototype), summary)
}

// MethodDetails renders the detail block of a method.
func MethodDetails(m *model.Method) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h4 class=\"details\" id=\"%s\"><i>method</i> %s</h4>\n", methodAnchor(m), esc(m.Name))
	b.WriteString("<div class=\"detblock\">\n")
	fmt.Fprintf(&b, "<p class=\"left\"><code>%s</code></p>\n", esc(m.Prototype))
	fmt.Fprintf(&b, "<p class=\"left\"><i>Access modifier:</i> %s</p>\n", m.Mod)
	if m.ReturnType != "" {
		fmt.Fprintf(&b, "<p class=\"left\"><i>Returns:</i> <code>%s</code></p>\n", esc(m.ReturnType))
	} else {
		b.WriteString("<p class=\"left\"><i>Returns nothing</i></p>\n")
	}
	b.WriteString(CommentDetails(m.Comment))
	b.WriteString("</div>\n")
	return b.String()
}

// Declaration renders a class or interface with its field and method
// tables and the method details.
func Declaration(d *model.Declaration, links *graph.Links) string {
	kind := "Class"
	if d.IsInterface() {
		kind = "Interface"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"decl\" id=\"%s\">\n", esc(d.Name))
	fmt.Fprintf(&b, "<p class=\"left\">%s name: %s<br>\n", kind, esc(d.Name))
	fmt.Fprintf(&b, "Access modifier: %s<br>\n", d.Mod)
	if d.Parent != "" && !d.IsInterface() {
		fmt.Fprintf(&b, "Parent: %s<br>\n", typeRef(d.Parent, links))
	}
	if d.Interface != "" {
		fmt.Fprintf(&b, "Implements interface: %s<br>\n", typeRef(d.Interface, links))
	}
	if subs := links.Subtypes(d.Name); len(subs) > 0 {
		refs := make([]string, len(subs))
		for i, s := range subs {
			refs[i] = typeRef(s, links)
		}
		fmt.Fprintf(&b, "Known subtypes: %s<br>\n", strings.Join(refs, ", "))
	}
	b.WriteString("</p>\n")

	fmt.Fprintf(&b, "<h3>%s %s contains fields:</h3>\n", kind, esc(d.Name))
	b.WriteString("<table class=\"tbl\"><tr><th>Field name</th><th>Modifier</th><th>Type</th><th>Description</th></tr>\n")
	for i := range d.Fields {
		b.WriteString(Field(&d.Fields[i]))
	}
	b.WriteString("</table>\n")

	fmt.Fprintf(&b, "<h3>%s %s contains methods:</h3>\n", kind, esc(d.Name))
	b.WriteString("<table class=\"tbl\"><tr><th>Method name</th><th>Prototype</th><th>Description</th></tr>\n")
	for i := range d.Methods {
		b.WriteString(Method(&d.Methods[i]))
	}
	b.WriteString("</table>\n")

	if len(d.Methods) > 0 {
		b.WriteString("<h3>Method details:</h3>\n")
		for i := range d.Methods {
			b.WriteString(MethodDetails(&d.Methods[i]))
		}
	}
	b.WriteString("</div>\n")
	return b.String()
}

// File renders the complete page of a source file.
func File(f *model.SourceFile, links *graph.Links) string {
	var b strings.Builder
	writeHead(&b, f.Name)
	fmt.Fprintf(&b, "<h2>Documentation: %s</h2>\n", esc(f.Name))
	if f.Package != "" {
		fmt.Fprintf(&b, "<p class=\"left\">Package: <code>%s</code></p>\n", esc(f.Package))
	}
	if len(f.Imports) > 0 {
		b.WriteString("<p class=\"left\">Imports:")
		for i, imp := range f.Imports {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, " <code>%s</code>", esc(imp))
		}
		b.WriteString("</p>\n")
	}
	for i := range f.Comments {
		b.WriteString(Comment(&f.Comments[i], links))
	}

	if len(f.Diagnostics) > 0 {
		b.WriteString("<h4>Skipped declarations:</h4>\n<ul>\n")
		for _, d := range f.Diagnostics {
			fmt.Fprintf(&b, "<li>line %d: <code>%s</code> (%s)</li>\n", d.Line, esc(d.Text), esc(d.Reason))
		}
		b.WriteString("</ul>\n")
	}

	fmt.Fprintf(&b, "<h3>%s contains class/interface:</h3>\n", esc(f.Name))
	for i := range f.Declarations {
		b.WriteString(Declaration(&f.Declarations[i], links))
	}

	page := graph.PageName(sourcePath(f))
	if refs := links.ReferencedBy(page); len(refs) > 0 {
		b.WriteString("<h4>Referenced by:</h4>\n<ul>\n")
		for _, r := range refs {
			fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", esc(r), esc(r))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// Index renders the project page: one row per source file with the
// description of its first file comment.
func Index(p *model.Project) string {
	var b strings.Builder
	writeHead(&b, p.Name)
	fmt.Fprintf(&b, "<h1>Project %s</h1>\n", esc(p.Name))
	b.WriteString("<table class=\"tbl\"><tr><th colspan=\"2\">Java files</th></tr>\n")
	for i := range p.Files {
		f := &p.Files[i]
		var desc string
		if len(f.Comments) > 0 {
			desc = description(f.Comments[0].Description)
		}
		fmt.Fprintf(&b, "<tr><td><a href=\"%s\">%s</a></td><td>%s</td></tr>\n",
			esc(graph.PageName(sourcePath(f))), esc(sourcePath(f)), desc)
	}
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}

func writeHead(b *strings.Builder, title string) {
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta http-equiv=\"Content-Type\" content=\"text/html; charset=utf-8\">\n")
	fmt.Fprintf(b, "<title>%s</title>\n", esc(title))
	fmt.Fprintf(b, "<style>\n%s\n</style>\n", style)
	b.WriteString("</head>\n<body>\n")
}

// typeRef links a type reference to its page when one is known.
func typeRef(ref string, links *graph.Links) string {
	if page, ok := links.Page(ref); ok {
		return fmt.Sprintf("<a href=\"%s#%s\">%s</a>", esc(page), esc(graph.TypeName(ref)), esc(ref))
	}
	return esc(ref)
}

// description joins the accumulated description lines with <br>.
func description(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "<br>\n")
}

func methodAnchor(m *model.Method) string {
	return fmt.Sprintf("%s-%d", esc(m.Name), m.Line)
}

func sourcePath(f *model.SourceFile) string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}

func esc(s string) string {
	return html.EscapeString(s)
}
