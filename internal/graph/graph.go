// Package graph indexes the declarations of a project so documentation
// pages can link to each other.
package graph

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/phobologic/javadoc2html/internal/model"
)

// Links resolves type names to pages. A nil *Links resolves nothing.
type Links struct {
	pages    map[string]string              // type name → page
	subtypes map[string]map[string]struct{} // type name → names extending or implementing it
	refs     map[string]map[string]struct{} // page → pages that reference it
}

// PageName derives the flat page name of a source file from its
// root-relative path: "com/x/Book.java" → "com.x.Book.html".
func PageName(path string) string {
	p := filepath.ToSlash(path)
	p = strings.TrimSuffix(p, ".java")
	return strings.ReplaceAll(p, "/", ".") + ".html"
}

// TypeName reduces a type reference to the simple name used as a key:
// type arguments, package qualifiers and member suffixes are dropped.
// "java.util.List<T>" → "List", "Item#name" → "Item".
func TypeName(ref string) string {
	s := strings.TrimSpace(ref)
	if i := strings.IndexAny(s, "<#( "); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Build indexes files. Files are visited in path order and the first
// definition of a name wins.
func Build(files []model.SourceFile) *Links {
	order := make([]int, len(files))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sourcePath(&files[order[a]]) < sourcePath(&files[order[b]])
	})

	l := &Links{
		pages:    make(map[string]string),
		subtypes: make(map[string]map[string]struct{}),
		refs:     make(map[string]map[string]struct{}),
	}

	for _, i := range order {
		f := &files[i]
		page := PageName(sourcePath(f))
		for j := range f.Declarations {
			if _, dup := l.pages[f.Declarations[j].Name]; !dup {
				l.pages[f.Declarations[j].Name] = page
			}
		}
	}

	for _, i := range order {
		f := &files[i]
		page := PageName(sourcePath(f))
		for j := range f.Declarations {
			d := &f.Declarations[j]
			for _, super := range supertypes(d) {
				addTo(l.subtypes, super, d.Name)
			}
		}
		for _, name := range referencedTypes(f) {
			target, ok := l.pages[name]
			if !ok || target == page {
				continue // no self-edges
			}
			addTo(l.refs, target, page)
		}
	}
	return l
}

// Page returns the page documenting the named type.
func (l *Links) Page(ref string) (string, bool) {
	if l == nil {
		return "", false
	}
	p, ok := l.pages[TypeName(ref)]
	return p, ok
}

// Subtypes returns the names of types that extend or implement name,
// sorted.
func (l *Links) Subtypes(name string) []string {
	if l == nil {
		return nil
	}
	return sortedKeys(l.subtypes[TypeName(name)])
}

// ReferencedBy returns the pages whose declarations or comments name a type
// documented on page, sorted.
func (l *Links) ReferencedBy(page string) []string {
	if l == nil {
		return nil
	}
	return sortedKeys(l.refs[page])
}

func sourcePath(f *model.SourceFile) string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}

func supertypes(d *model.Declaration) []string {
	var out []string
	if d.Parent != "" && !d.IsInterface() {
		out = append(out, TypeName(d.Parent))
	}
	if d.Interface != "" {
		out = append(out, TypeName(d.Interface))
	}
	return out
}

// referencedTypes lists the type names a file mentions in headers, @see
// tags and {@link} targets.
func referencedTypes(f *model.SourceFile) []string {
	var names []string
	addComment := func(c *model.Comment) {
		if c == nil {
			return
		}
		if c.See != "" {
			names = append(names, TypeName(c.See))
		}
		for _, ln := range c.Links {
			names = append(names, TypeName(ln.Target))
		}
	}

	for i := range f.Comments {
		addComment(&f.Comments[i])
	}
	for i := range f.Declarations {
		d := &f.Declarations[i]
		names = append(names, supertypes(d)...)
		for j := range d.Methods {
			addComment(d.Methods[j].Comment)
		}
		for j := range d.Fields {
			addComment(d.Fields[j].Comment)
		}
	}
	return names
}

func addTo(m map[string]map[string]struct{}, key, value string) {
	if m[key] == nil {
		m[key] = make(map[string]struct{})
	}
	m[key][value] = struct{}{}
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
