package parse

import "github.com/phobologic/javadoc2html/internal/model"

// extractField decomposes a field declaration line. The name is the last
// identifier before '=' or ';'; the text before it, minus the access
// modifier, is the type. Comma-separated names are not split, so
// "int a, b;" yields a field named b of type "int a,".
func extractField(line string) (model.Field, bool) {
	fm, ok := matchField(line)
	if !ok {
		return model.Field{}, false
	}
	mod, typ := splitModifiers(fm.typeText)
	return model.Field{Name: fm.name, Mod: mod, Type: typ}, true
}
