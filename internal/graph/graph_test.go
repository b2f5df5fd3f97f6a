package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phobologic/javadoc2html/internal/model"
)

func TestPageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"Book.java", "Book.html"},
		{"com/acme/Book.java", "com.acme.Book.html"},
		{"src/main/java/Item.java", "src.main.java.Item.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageName(tt.path), tt.path)
	}
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want string
	}{
		{"Item", "Item"},
		{"Base<T>", "Base"},
		{"java.util.List<String>", "List"},
		{"Item#name", "Item"},
		{"Book#getTitle()", "Book"},
		{" Item the parent", "Item"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeName(tt.ref), tt.ref)
	}
}

func projectFiles() []model.SourceFile {
	return []model.SourceFile{
		{
			Name: "Book.java",
			Path: "lib/Book.java",
			Declarations: []model.Declaration{{
				Kind: model.Class, Name: "Book", Parent: "Item", Interface: "Readable",
				Methods: []model.Method{{
					Name:    "getTitle",
					Comment: &model.Comment{Links: []model.Link{{Text: "See", Target: "Item#name"}}},
				}},
			}},
		},
		{
			Name:         "Item.java",
			Path:         "lib/Item.java",
			Comments:     []model.Comment{{See: "Item"}},
			Declarations: []model.Declaration{{Kind: model.Class, Name: "Item"}},
		},
		{
			Name: "Readable.java",
			Path: "lib/Readable.java",
			Declarations: []model.Declaration{{
				Kind: model.Interface, Name: "Readable", Parent: model.InterfaceParent,
			}},
		},
		{
			Name:         "Magazine.java",
			Path:         "lib/Magazine.java",
			Declarations: []model.Declaration{{Kind: model.Class, Name: "Magazine", Parent: "Item"}},
		},
		{
			Name:         "Book.java",
			Path:         "other/Book.java",
			Declarations: []model.Declaration{{Kind: model.Class, Name: "Book"}},
		},
	}
}

func TestBuildPages(t *testing.T) {
	t.Parallel()

	l := Build(projectFiles())

	p, ok := l.Page("Item")
	assert.True(t, ok)
	assert.Equal(t, "lib.Item.html", p)

	p, ok = l.Page("Book#getTitle")
	assert.True(t, ok)
	assert.Equal(t, "lib.Book.html", p, "first definition in path order wins")

	_, ok = l.Page("String")
	assert.False(t, ok)
}

func TestBuildSubtypes(t *testing.T) {
	t.Parallel()

	l := Build(projectFiles())

	assert.Equal(t, []string{"Book", "Magazine"}, l.Subtypes("Item"))
	assert.Equal(t, []string{"Book"}, l.Subtypes("Readable"))
	assert.Empty(t, l.Subtypes("Book"))
	assert.Empty(t, l.Subtypes(model.InterfaceParent))
}

func TestBuildReferencedBy(t *testing.T) {
	t.Parallel()

	l := Build(projectFiles())

	assert.Equal(t, []string{"lib.Book.html", "lib.Magazine.html"}, l.ReferencedBy("lib.Item.html"))
	assert.Equal(t, []string{"lib.Book.html"}, l.ReferencedBy("lib.Readable.html"))
	assert.Empty(t, l.ReferencedBy("lib.Book.html"))
}

func TestNilLinks(t *testing.T) {
	t.Parallel()

	var l *Links
	_, ok := l.Page("Item")
	assert.False(t, ok)
	assert.Nil(t, l.Subtypes("Item"))
	assert.Nil(t, l.ReferencedBy("Item.html"))
}
