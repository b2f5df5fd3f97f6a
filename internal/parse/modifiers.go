package parse

import (
	"strings"

	"github.com/phobologic/javadoc2html/internal/model"
)

// modifierWords are the tokens recognized at the start of a declaration.
var modifierWords = map[string]struct{}{
	"public":       {},
	"protected":    {},
	"private":      {},
	"strictfp":     {},
	"static":       {},
	"final":        {},
	"abstract":     {},
	"synchronized": {},
	"native":       {},
	"transient":    {},
	"volatile":     {},
	"default":      {},
}

// accessPrecedence orders the modifiers that classify a member. The first
// one present in the leading modifier run wins.
var accessPrecedence = []model.Modifier{
	model.Public,
	model.Protected,
	model.Private,
	model.Strictfp,
}

// splitModifiers classifies the access modifier of a declaration prefix and
// returns the remaining text with that one token removed. Only the leading
// run of modifier tokens is considered, so a type named like a modifier
// further right is left alone. Without a recognized modifier the result is
// package-private and the text is returned unchanged (whitespace collapsed).
func splitModifiers(text string) (model.Modifier, string) {
	toks := strings.Fields(text)

	run := 0
	for run < len(toks) {
		if _, ok := modifierWords[toks[run]]; !ok {
			break
		}
		run++
	}

	mod, at := model.PackagePrivate, -1
	for _, m := range accessPrecedence {
		for i := 0; i < run; i++ {
			if toks[i] == string(m) {
				mod, at = m, i
				break
			}
		}
		if at >= 0 {
			break
		}
	}

	if at >= 0 {
		toks = append(toks[:at:at], toks[at+1:]...)
	}
	return mod, strings.Join(toks, " ")
}
