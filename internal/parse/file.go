// Package parse recognizes Java declarations and documentation comments
// line by line and assembles them into a model.SourceFile.
//
// It is a best-effort line-pattern recognizer, not a Java parser:
//   - signatures spanning several lines are not recognized,
//   - nested and inner classes are not modeled,
//   - generics with embedded commas, and annotations, are not understood,
//   - only the first top-level declaration of a file is documented; every
//     line after its header belongs to that declaration's body.
package parse

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/phobologic/javadoc2html/internal/model"
)

const maxLineSize = 1 << 20

type filePhase int

const (
	beforeFirstDeclaration filePhase = iota
	inDeclaration
)

// File parses the Java source file at path. The file is closed before File
// returns.
func File(path string, opts Options) (*model.SourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	return Reader(path, f, opts)
}

// Reader parses Java source read from r. path names the source in the
// result and in errors.
func Reader(path string, r io.Reader, opts Options) (*model.SourceFile, error) {
	m := &fileMachine{
		path: path,
		opts: opts,
		file: model.SourceFile{Name: filepath.Base(path)},
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := m.feed(sc.Text(), lineNo); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}

	return &m.file, nil
}

// fileMachine walks a whole file. Before the first declaration it collects
// documentation comments for the file; once a header is found every further
// line goes to that declaration's body.
type fileMachine struct {
	path string
	opts Options

	phase   filePhase
	comment *commentBuilder
	body    bodyState

	file model.SourceFile
}

func (m *fileMachine) feed(line string, lineNo int) error {
	if m.phase == inDeclaration {
		m.feedBody(line, lineNo)
		return nil
	}

	if m.comment != nil {
		if isCommentClose(line) {
			m.file.Comments = append(m.file.Comments, m.comment.finish())
			m.comment = nil
		} else {
			m.comment.feed(line)
		}
		return nil
	}

	h, ok := matchClassHeader(line)
	if !ok {
		h, ok = matchInterfaceHeader(line)
	}
	if ok {
		return m.startDeclaration(h, line, lineNo)
	}

	if isCommentOpen(line) {
		b, done := openComment(line)
		if done {
			m.file.Comments = append(m.file.Comments, b.finish())
		} else {
			m.comment = &b
		}
	}
	return nil
}

func (m *fileMachine) startDeclaration(h header, line string, lineNo int) error {
	d, reason := h.declaration()
	if reason != "" {
		if m.opts.OnMalformed == Skip {
			m.file.Diagnostics = append(m.file.Diagnostics, model.Diagnostic{
				Line:   lineNo,
				Text:   line,
				Reason: reason,
			})
			return nil
		}
		return &MalformedDeclarationError{Path: m.path, Line: lineNo, Text: line, Reason: reason}
	}

	d.Line = lineNo
	m.file.Declarations = append(m.file.Declarations, d)
	m.body = newBody(d.Kind, m.opts.BodyTracking)
	m.phase = inDeclaration
	return nil
}

func (m *fileMachine) feedBody(line string, lineNo int) {
	var e entity
	m.body, e = m.body.next(line)

	d := &m.file.Declarations[0]
	if e.method != nil {
		e.method.Line = lineNo
		d.Methods = append(d.Methods, *e.method)
	}
	if e.field != nil {
		d.Fields = append(d.Fields, *e.field)
	}
}
