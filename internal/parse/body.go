package parse

import (
	"strings"

	"github.com/phobologic/javadoc2html/internal/model"
)

// Phase is the state of a declaration body walk.
type Phase int

const (
	Scanning Phase = iota
	InComment
	InMethodBody
)

// entity is what a single body line can produce: at most one member.
type entity struct {
	method *model.Method
	field  *model.Field
}

// bodyState advances over one line of a declaration body.
type bodyState interface {
	next(line string) (bodyState, entity)
}

func newBody(kind model.DeclKind, tracking BodyTracking) bodyState {
	if kind == model.Interface {
		return interfaceBody{}
	}
	return classBody{tracking: tracking}
}

// classBody walks a class body. Rules are tried in order and a line
// triggers at most one of them:
//
//  1. comment open (not in a comment): start a comment
//  2. in a comment, not a close line: feed the comment
//  3. close line: complete the comment, it becomes pending
//  4. class method (not in a body): emit a method carrying the pending
//     comment, enter the method body
//  5. in a method body: watch for the end of the body
//  6. field (not in a body): emit a field
//
// The pending comment belongs to the next method. A field matched before
// that method shows a copy of it, and only the first such field does.
type classBody struct {
	phase    Phase
	resume   Phase // phase to return to when the open comment closes
	tracking BodyTracking

	comment commentBuilder
	pending *model.Comment
	shown   bool // pending comment already copied to a field

	depth  int
	opened bool
}

func (s classBody) next(line string) (bodyState, entity) {
	switch {
	case s.phase != InComment && isCommentOpen(line):
		b, done := openComment(line)
		if done {
			c := b.finish()
			s.pending, s.shown = &c, false
			return s, entity{}
		}
		s.resume, s.phase, s.comment = s.phase, InComment, b
		return s, entity{}

	case s.phase == InComment && !isCommentClose(line):
		s.comment.feed(line)
		return s, entity{}

	case isCommentClose(line):
		if s.phase == InComment {
			c := s.comment.finish()
			s.pending, s.shown = &c, false
			s.phase, s.comment = s.resume, commentBuilder{}
		}
		return s, entity{}
	}

	if s.phase != InMethodBody {
		if m, body, ok := extractClassMethod(line); ok {
			m.Comment, s.pending = s.pending, nil
			if s.enterBody(body) {
				s.phase = InMethodBody
			}
			return s, entity{method: &m}
		}
	}

	if s.phase == InMethodBody {
		return s.trackBody(line), entity{}
	}

	if f, ok := extractField(line); ok {
		if s.pending != nil && !s.shown {
			c := *s.pending
			f.Comment, s.shown = &c, true
		}
		return s, entity{field: &f}
	}
	return s, entity{}
}

// enterBody reports whether the method line leaves a body open. It also
// primes the brace depth for depth tracking.
func (s *classBody) enterBody(body string) bool {
	s.depth, s.opened = braceBalance(body)
	if s.tracking == TrackDepth {
		return !s.opened || s.depth > 0
	}
	return !strings.Contains(body, "}")
}

// trackBody looks for the end of the current method body.
//
// With presence tracking any '}' ends the body, so an inner block closing
// before the method does ends it early and the remaining body lines are
// read as declaration lines. Depth tracking counts braces instead.
func (s classBody) trackBody(line string) classBody {
	if s.tracking != TrackDepth {
		if strings.Contains(line, "}") {
			s.phase = Scanning
		}
		return s
	}

	delta, opened := braceBalance(line)
	s.depth += delta
	s.opened = s.opened || opened
	if s.opened && s.depth <= 0 {
		s.phase, s.depth, s.opened = Scanning, 0, false
	}
	return s
}

// interfaceBody walks an interface body: abstract methods and constants.
// Comment blocks are skipped but never paired with members.
type interfaceBody struct {
	inComment bool
}

func (s interfaceBody) next(line string) (bodyState, entity) {
	if s.inComment {
		s.inComment = !isCommentClose(line)
		return s, entity{}
	}
	if isCommentOpen(line) {
		_, done := openComment(line)
		s.inComment = !done
		return s, entity{}
	}
	if m, ok := extractInterfaceMethod(line); ok {
		return s, entity{method: &m}
	}
	if f, ok := extractField(line); ok {
		return s, entity{field: &f}
	}
	return s, entity{}
}
