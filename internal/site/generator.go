package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/phobologic/javadoc2html/internal/config"
	"github.com/phobologic/javadoc2html/internal/discover"
	"github.com/phobologic/javadoc2html/internal/model"
	"github.com/phobologic/javadoc2html/internal/outline"
	"github.com/phobologic/javadoc2html/internal/parse"
)

// ErrNoSources is returned when a run finds nothing it could document.
var ErrNoSources = errors.New("no parseable Java files found")

// Result summarizes one generator run.
type Result struct {
	Files   int     // source files documented
	Skipped int     // source files skipped (size limit, read or parse failure)
	Pages   []Page  // rendered pages
	Drift   []Drift // check mode only
}

// Generator documents one project: discover, parse, render, then write or
// check the pages.
type Generator struct {
	cfg    *config.Config
	logger zerolog.Logger
	check  bool
}

// NewGenerator creates a generator. In check mode pages are compared with
// the output directory instead of written.
func NewGenerator(cfg *config.Config, logger zerolog.Logger, check bool) *Generator {
	return &Generator{
		cfg:    cfg,
		logger: logger.With().Str("project", cfg.Project).Logger(),
		check:  check,
	}
}

// Run documents the project at path, a directory or a single .java file.
// Files that cannot be read or parsed are logged and skipped.
func (g *Generator) Run(ctx context.Context, path string) (*Result, error) {
	root, err := discover.Root(path)
	if err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}

	entries, err := discover.Files(path, g.cfg.DiscoverOptions())
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	res := &Result{}
	project := &model.Project{Name: g.cfg.Project}
	op := outline.NewParser()

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.Size > g.cfg.MaxFileSize {
			g.logger.Warn().Str("file", e.Path).Int64("size", e.Size).
				Msgf("skipped (>%d bytes)", g.cfg.MaxFileSize)
			res.Skipped++
			continue
		}

		sf, err := g.parseFile(ctx, op, root, e.Path)
		if err != nil {
			g.logFailure(e.Path, err)
			res.Skipped++
			continue
		}
		project.Files = append(project.Files, *sf)
	}

	res.Files = len(project.Files)
	if res.Files == 0 {
		return res, ErrNoSources
	}

	res.Pages = Build(project)

	if g.check {
		res.Drift, err = Check(g.cfg.Output, res.Pages)
		if err != nil {
			return nil, err
		}
		for _, d := range res.Drift {
			g.logger.Warn().Str("page", d.Page).Bool("missing", d.Missing).Msg("page out of date")
		}
		return res, nil
	}

	if err := Write(g.cfg.Output, res.Pages); err != nil {
		return nil, err
	}
	g.logger.Info().Str("output", g.cfg.Output).Int("files", res.Files).Int("pages", len(res.Pages)).
		Msg("documentation written")
	return res, nil
}

// parseFile reads one source file, parses it and attaches its outline.
func (g *Generator) parseFile(ctx context.Context, op *outline.Parser, root, rel string) (*model.SourceFile, error) {
	abs := filepath.Join(root, rel)
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, &parse.SourceUnavailableError{Path: rel, Err: err}
	}

	sf, err := parse.Reader(rel, bytes.NewReader(src), g.cfg.ParseOptions())
	if err != nil {
		return nil, err
	}
	sf.Path = filepath.ToSlash(rel)

	for _, d := range sf.Diagnostics {
		g.logger.Warn().Str("file", rel).Int("line", d.Line).Str("reason", d.Reason).
			Msg("skipped malformed declaration")
	}

	o, err := op.Parse(ctx, src)
	if err != nil {
		g.logger.Debug().Err(err).Str("file", rel).Msg("outline unavailable")
		return sf, nil
	}
	sf.Package, sf.Imports = o.Package, o.Imports
	if o.Partial {
		g.logger.Debug().Str("file", rel).Msg("outline recovered from syntax errors and may be incomplete")
	}
	if folded := o.Folded(); len(folded) > 0 && len(sf.Declarations) > 0 {
		g.logger.Warn().Str("file", rel).Str("declaration", sf.Declarations[0].Name).Strs("folded", typeNames(folded)).
			Msg("later top-level types are documented as part of the first declaration")
	}
	return sf, nil
}

func typeNames(types []outline.TypeDecl) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

func (g *Generator) logFailure(rel string, err error) {
	var merr *parse.MalformedDeclarationError
	if errors.As(err, &merr) {
		g.logger.Warn().Str("file", rel).Int("line", merr.Line).Str("reason", merr.Reason).
			Msg("skipped file: malformed declaration")
		return
	}
	g.logger.Warn().Err(err).Str("file", rel).Msg("skipped file")
}
