package parse

import (
	"strings"

	"github.com/phobologic/javadoc2html/internal/model"
)

// extractClassMethod decomposes a method signature line from a class body.
// The returned body is the text from the opening brace on, if any.
func extractClassMethod(line string) (model.Method, string, bool) {
	mm, ok := matchClassMethod(line)
	if !ok {
		return model.Method{}, "", false
	}
	return newMethod(mm), mm.body, true
}

// extractInterfaceMethod decomposes an abstract method declaration ending
// in ';'.
func extractInterfaceMethod(line string) (model.Method, bool) {
	mm, ok := matchInterfaceMethod(line)
	if !ok {
		return model.Method{}, false
	}
	return newMethod(mm), true
}

func newMethod(mm methodMatch) model.Method {
	mod, ret := splitModifiers(mm.typeText)
	return model.Method{
		Prototype:  mm.prototype,
		Mod:        mod,
		Name:       mm.name,
		Args:       mm.args,
		ReturnType: ret,
	}
}

// braceBalance counts opening minus closing braces in s and reports
// whether any opening brace was seen.
func braceBalance(s string) (delta int, opened bool) {
	opens := strings.Count(s, "{")
	return opens - strings.Count(s, "}"), opens > 0
}
