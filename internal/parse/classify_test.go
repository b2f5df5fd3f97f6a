package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/javadoc2html/internal/model"
)

func TestHeaderDeclaration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want model.Declaration
	}{
		{
			name: "public class",
			line: "public class Book {",
			want: model.Declaration{Kind: model.Class, Name: "Book", Mod: model.Public},
		},
		{
			name: "package-private class without brace",
			line: "class Product",
			want: model.Declaration{Kind: model.Class, Name: "Product", Mod: model.PackagePrivate},
		},
		{
			name: "type params with extends and implements",
			line: "public final class Box<T extends Item> extends Base<T> implements Readable, Closeable {",
			want: model.Declaration{
				Kind: model.Class, Name: "Box", Mod: model.Public,
				Parent: "Base<T>", Interface: "Readable",
			},
		},
		{
			name: "interface extending another",
			line: "public interface Readable extends Closeable {",
			want: model.Declaration{
				Kind: model.Interface, Name: "Readable", Mod: model.Public,
				Parent: model.InterfaceParent,
			},
		},
		{
			name: "sealed permits clause ignored",
			line: "public abstract class Shape extends Figure permits Circle, Square {",
			want: model.Declaration{Kind: model.Class, Name: "Shape", Mod: model.Public, Parent: "Figure"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, ok := matchClassHeader(tt.line)
			if !ok {
				h, ok = matchInterfaceHeader(tt.line)
			}
			require.True(t, ok, "header did not match")

			got, reason := h.declaration()
			require.Empty(t, reason)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchHeaderModifiersOnly(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		"public sealed interface Shape permits Circle {",
		"non-sealed class Circle extends Shape {",
		"    static final class Entry {",
	} {
		_, ok := matchClassHeader(line)
		if !ok {
			_, ok = matchInterfaceHeader(line)
		}
		assert.True(t, ok, "line %q", line)
	}

	for _, line := range []string{
		"   This class handles orders",
		" * The interface between client and server",
		"Returns the class name",
		"// helper class for tests",
	} {
		_, ok := matchClassHeader(line)
		assert.False(t, ok, "line %q", line)
		_, ok = matchInterfaceHeader(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestHeaderDeclarationMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		reason string
	}{
		{"class Foo extends {", "extends without a type name"},
		{"class Foo implements Bar extends Baz {", "implements clause before extends"},
		{"class extends Foo {", `"extends" is a reserved word, not a type name`},
		{"interface Foo implements Bar {", "an interface cannot implement"},
		{"class Foo<T {", "unterminated type parameter list"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			h, ok := matchClassHeader(tt.line)
			if !ok {
				h, ok = matchInterfaceHeader(tt.line)
			}
			require.True(t, ok)

			_, reason := h.declaration()
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestMatchClassMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		typeText string
		name     string
		args     string
		body     string
	}{
		{"    public String getTitle() {", "public String", "getTitle", "", "{"},
		{"    Product()", "", "Product", "", ""},
		{"    public int size() { return n; }", "public int", "size", "", "{ return n; }"},
		{"    public void save(String path) throws IOException, SQLException {", "public void", "save", "String path", "{"},
		{"    public boolean verify(String token) {", "public boolean", "verify", "String token", "{"},
		{"\tstatic <T> List<T> wrap(T value) {", "static <T> List<T>", "wrap", "T value", "{"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mm, ok := matchClassMethod(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.typeText, mm.typeText)
			assert.Equal(t, tt.name, mm.name)
			assert.Equal(t, tt.args, mm.args)
			assert.Equal(t, tt.body, mm.body)
		})
	}
}

func TestMatchClassMethodRejects(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		"        if (x) {",
		"    } else if (y) {",
		"    for (int i = 0; i < n; i++) {",
		"        while (running) {",
		"    } catch (IOException e) {",
		"        switch (kind) {",
		"        synchronized (lock) {",
		"        foo(bar);",
		"    String read(String path);",
		"        list.forEach(x -> {",
		"        (x) {",
	} {
		_, ok := matchClassMethod(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestMatchInterfaceMethod(t *testing.T) {
	t.Parallel()

	mm, ok := matchInterfaceMethod("    String read(String path);")
	require.True(t, ok)
	assert.Equal(t, "String", mm.typeText)
	assert.Equal(t, "read", mm.name)
	assert.Equal(t, "String path", mm.args)
	assert.Equal(t, "String read(String path);", mm.prototype)

	mm, ok = matchInterfaceMethod("    void close() throws IOException;")
	require.True(t, ok)
	assert.Equal(t, "close", mm.name)

	_, ok = matchInterfaceMethod("    int MAX = compute(3);")
	assert.False(t, ok)
	_, ok = matchInterfaceMethod("    String read(String path) {")
	assert.False(t, ok)
}

func TestExtractField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want model.Field
	}{
		{"    private String title;", model.Field{Name: "title", Mod: model.Private, Type: "String"}},
		{"    public static final int MAX = 10;", model.Field{Name: "MAX", Mod: model.Public, Type: "static final int"}},
		{"    double price;", model.Field{Name: "price", Mod: model.PackagePrivate, Type: "double"}},
		{
			"    private Map<String, Integer> counts = new HashMap<>();",
			model.Field{Name: "counts", Mod: model.Private, Type: "Map<String, Integer>"},
		},
		{"    int[] values;", model.Field{Name: "values", Mod: model.PackagePrivate, Type: "int[]"}},
		{"    String names[];", model.Field{Name: "names[]", Mod: model.PackagePrivate, Type: "String"}},
		{"    protected long id; // primary key", model.Field{Name: "id", Mod: model.Protected, Type: "long"}},
		{`    private String sep = "a;b";`, model.Field{Name: "sep", Mod: model.Private, Type: "String"}},
		{`    static final char SEMI = ';';`, model.Field{Name: "SEMI", Mod: model.PackagePrivate, Type: "static final char"}},
		{`    String quote = "say \"hi;\"";`, model.Field{Name: "quote", Mod: model.PackagePrivate, Type: "String"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			got, ok := extractField(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractFieldRejects(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		"    public int size() { return n; }",
		"        x = 5;",
		"    foo(bar);",
		"}",
		"",
	} {
		_, ok := extractField(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestSplitModifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		mod  model.Modifier
		rest string
	}{
		{"public String", model.Public, "String"},
		{"static public void", model.Public, "static void"},
		{"strictfp double", model.Strictfp, "double"},
		{"public strictfp double", model.Public, "strictfp double"},
		{"final private int", model.Private, "final int"},
		{"protected abstract void", model.Protected, "abstract void"},
		{"String", model.PackagePrivate, "String"},
		{"static final int", model.PackagePrivate, "static final int"},
		{"", model.PackagePrivate, ""},
		{"Map<String,  Integer>", model.PackagePrivate, "Map<String, Integer>"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			mod, rest := splitModifiers(tt.text)
			assert.Equal(t, tt.mod, mod)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestBraceBalance(t *testing.T) {
	t.Parallel()

	delta, opened := braceBalance("{ if (x) { y(); }")
	assert.Equal(t, 1, delta)
	assert.True(t, opened)

	delta, opened = braceBalance("}")
	assert.Equal(t, -1, delta)
	assert.False(t, opened)
}
