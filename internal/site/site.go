// Package site turns a parsed project into HTML pages and writes them to
// an output directory.
package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phobologic/javadoc2html/internal/graph"
	"github.com/phobologic/javadoc2html/internal/model"
	"github.com/phobologic/javadoc2html/internal/render"
)

// Page is one rendered HTML file.
type Page struct {
	Name    string // file name inside the output directory
	Content string
}

// IndexName returns the name of the project page: "<project>.html", or
// "index.html" when a source file page already uses that name.
func IndexName(p *model.Project) string {
	name := p.Name + ".html"
	for i := range p.Files {
		if pageName(&p.Files[i]) == name {
			return "index.html"
		}
	}
	return name
}

// Build renders the project page followed by one page per source file, in
// file order.
func Build(p *model.Project) []Page {
	links := graph.Build(p.Files)

	pages := make([]Page, 0, len(p.Files)+1)
	pages = append(pages, Page{Name: IndexName(p), Content: render.Index(p)})
	for i := range p.Files {
		f := &p.Files[i]
		pages = append(pages, Page{Name: pageName(f), Content: render.File(f, links)})
	}
	return pages
}

// Write creates dir if needed and writes every page into it.
func Write(dir string, pages []Page) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, pg := range pages {
		path := filepath.Join(dir, pg.Name)
		if err := os.WriteFile(path, []byte(pg.Content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", pg.Name, err)
		}
	}
	return nil
}

func pageName(f *model.SourceFile) string {
	if f.Path != "" {
		return graph.PageName(f.Path)
	}
	return graph.PageName(f.Name)
}
