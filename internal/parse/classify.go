package parse

import (
	"regexp"
	"strings"

	"github.com/phobologic/javadoc2html/internal/model"
)

// Examples matched by the line patterns below:
//
//	public final class Book extends Item implements Readable {   // class header
//	public interface Readable {                                 // interface header
//	    public String getTitle() {                              // class method
//	    Book(String title)                                      // class method (constructor)
//	    String read(String path);                               // interface method
//	    private String title;                                   // field
//	    static final int MAX = 10;                              // field with default
//
// Every matcher looks at a single line, without its terminator, and never at
// the lines around it.

const (
	commentOpen  = "/**"
	commentClose = "*/"
)

var (
	// Groups: 1 leading words, 2 name, 3 tail (type params,
	// extends/implements clauses, opening brace). The leading words must
	// all be modifiers, see headerModifiers.
	reClassHeader     = regexp.MustCompile(`^\s*((?:[\w-]+\s+)*?)class\s+(\w+)(.*)$`)
	reInterfaceHeader = regexp.MustCompile(`^\s*((?:[\w-]+\s+)*?)interface\s+(\w+)(.*)$`)

	// Groups: 1 everything before the first '(', 2 argument text,
	// 3 optional body opener ("{" or a whole one-line body).
	reClassMethod = regexp.MustCompile(
		`^([^(]*)\((.*)\)\s*(?:throws\s+[\w.$]+(?:\s*,\s*[\w.$]+)*\s*)?(\{.*)?$`,
	)

	// Groups: 1 return type and modifiers, 2 name, 3 argument text.
	reInterfaceMethod = regexp.MustCompile(
		`^\s*([^=(]*\S)\s+([A-Za-z_$][\w$]*)\s*\((.*)\)\s*(?:throws\s+[^;]*)?;\s*$`,
	)

	// Groups: 1 modifiers and type, 2 name, 3 optional default value.
	// String and char literals in the default may contain ';'.
	reField = regexp.MustCompile(
		`^\s*([^;(){}=]*?\S)\s+([A-Za-z_$][\w$]*(?:\[\])*)\s*` +
			`(?:=\s*((?:"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'|[^;"'])*?))?\s*;\s*(?://.*)?$`,
	)

	reIdentifier = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
	reWordIf     = regexp.MustCompile(`\bif\b`)
)

var javaKeywords = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "class": {}, "const": {},
	"continue": {}, "default": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "extends": {}, "final": {}, "finally": {}, "float": {},
	"for": {}, "goto": {}, "if": {}, "implements": {}, "import": {},
	"instanceof": {}, "int": {}, "interface": {}, "long": {}, "native": {},
	"new": {}, "package": {}, "private": {}, "protected": {}, "public": {},
	"return": {}, "short": {}, "static": {}, "strictfp": {}, "super": {},
	"switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "try": {}, "void": {}, "volatile": {}, "while": {},
	"true": {}, "false": {}, "null": {},
}

func isKeyword(word string) bool {
	_, ok := javaKeywords[word]
	return ok
}

func isCommentOpen(line string) bool {
	return strings.Contains(line, commentOpen)
}

func isCommentClose(line string) bool {
	return strings.Contains(line, commentClose)
}

// header is a coarse class or interface header match. It still has to be
// decomposed into a declaration, which can fail.
type header struct {
	kind model.DeclKind
	mods string
	name string
	tail string
}

// headerModifiers reports whether every word before the class or interface
// keyword is a modifier, so prose such as "This class handles orders" in an
// ordinary block comment is not taken for a header.
func headerModifiers(words string) bool {
	for _, w := range strings.Fields(words) {
		if _, ok := modifierWords[w]; ok {
			continue
		}
		if w == "sealed" || w == "non-sealed" {
			continue
		}
		return false
	}
	return true
}

func matchClassHeader(line string) (header, bool) {
	m := reClassHeader.FindStringSubmatch(line)
	if m == nil || !headerModifiers(m[1]) {
		return header{}, false
	}
	return header{kind: model.Class, mods: m[1], name: m[2], tail: m[3]}, true
}

func matchInterfaceHeader(line string) (header, bool) {
	m := reInterfaceHeader.FindStringSubmatch(line)
	if m == nil || !headerModifiers(m[1]) {
		return header{}, false
	}
	return header{kind: model.Interface, mods: m[1], name: m[2], tail: m[3]}, true
}

// methodMatch is the decomposition shared by both method forms.
type methodMatch struct {
	prototype string
	typeText  string // return type with modifiers still attached
	name      string
	args      string
	body      string // text from the opening brace on, class methods only
}

// matchClassMethod matches a method signature line inside a class body.
// The text before '(' must not contain the word "if" and must end in an
// identifier that is not a keyword.
func matchClassMethod(line string) (methodMatch, bool) {
	m := reClassMethod.FindStringSubmatch(line)
	if m == nil {
		return methodMatch{}, false
	}
	prefix := strings.TrimSpace(m[1])
	if prefix == "" || reWordIf.MatchString(prefix) {
		return methodMatch{}, false
	}
	typeText, name := splitLastToken(prefix)
	if !reIdentifier.MatchString(name) || isKeyword(name) {
		return methodMatch{}, false
	}
	return methodMatch{
		prototype: strings.TrimSpace(line),
		typeText:  typeText,
		name:      name,
		args:      strings.TrimSpace(m[2]),
		body:      m[3],
	}, true
}

func matchInterfaceMethod(line string) (methodMatch, bool) {
	m := reInterfaceMethod.FindStringSubmatch(line)
	if m == nil || isKeyword(m[2]) {
		return methodMatch{}, false
	}
	return methodMatch{
		prototype: strings.TrimSpace(line),
		typeText:  m[1],
		name:      m[2],
		args:      strings.TrimSpace(m[3]),
	}, true
}

// fieldMatch holds the pieces of a field declaration line.
type fieldMatch struct {
	typeText string
	name     string
	value    string
}

func matchField(line string) (fieldMatch, bool) {
	m := reField.FindStringSubmatch(line)
	if m == nil || isKeyword(m[2]) {
		return fieldMatch{}, false
	}
	return fieldMatch{typeText: m[1], name: m[2], value: m[3]}, true
}

// splitLastToken splits s at its rightmost whitespace run.
func splitLastToken(s string) (rest, last string) {
	i := strings.LastIndexFunc(s, isSpace)
	if i < 0 {
		return "", s
	}
	return strings.TrimSpace(s[:i]), s[i+1:]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
