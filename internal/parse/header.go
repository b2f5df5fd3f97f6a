package parse

import (
	"fmt"
	"strings"

	"github.com/phobologic/javadoc2html/internal/model"
)

// declaration decomposes a header match. A non-empty reason means the
// header is malformed.
func (h header) declaration() (model.Declaration, string) {
	if isKeyword(h.name) {
		return model.Declaration{}, fmt.Sprintf("%q is a reserved word, not a type name", h.name)
	}

	mod, _ := splitModifiers(h.mods)
	d := model.Declaration{Kind: h.kind, Name: h.name, Mod: mod}
	if h.kind == model.Interface {
		d.Parent = model.InterfaceParent
	}

	tail, ok := stripTypeParams(h.tail)
	if !ok {
		return model.Declaration{}, "unterminated type parameter list"
	}
	if i := strings.Index(tail, "{"); i >= 0 {
		tail = tail[:i]
	}

	toks := strings.Fields(tail)
	seenImplements := false
loop:
	for i := 0; i < len(toks); i++ {
		clause := toks[i]
		switch clause {
		case "extends", "implements":
		case "permits":
			break loop
		default:
			continue
		}

		if clause == "implements" && h.kind == model.Interface {
			return model.Declaration{}, "an interface cannot implement"
		}
		if clause == "extends" && seenImplements {
			return model.Declaration{}, "implements clause before extends"
		}

		var name string
		if i+1 < len(toks) {
			name = firstTypeName(toks[i+1])
		}
		if name == "" || isKeyword(name) {
			return model.Declaration{}, clause + " without a type name"
		}
		i++

		switch {
		case clause == "implements":
			seenImplements = true
			if d.Interface == "" {
				d.Interface = name
			}
		case h.kind == model.Class && d.Parent == "":
			d.Parent = name
		}
	}
	return d, ""
}

// stripTypeParams removes a leading <...> type parameter list.
func stripTypeParams(tail string) (string, bool) {
	s := strings.TrimSpace(tail)
	if !strings.HasPrefix(s, "<") {
		return s, true
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[i+1:]), true
			}
		}
	}
	return "", false
}

// firstTypeName returns the first name of a comma-joined token list.
func firstTypeName(tok string) string {
	name, _, _ := strings.Cut(tok, ",")
	return strings.TrimSpace(name)
}
