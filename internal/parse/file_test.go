package parse

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/javadoc2html/internal/model"
)

func parseSource(t *testing.T, src string, opts Options) *model.SourceFile {
	t.Helper()
	f, err := Reader("Test.java", strings.NewReader(src), opts)
	require.NoError(t, err)
	return f
}

func TestParseClassWithCommentedMethod(t *testing.T) {
	t.Parallel()

	src := `public class Book {
/**
* @author Jane
* Simple book class.
*/
public String getTitle() {
return title;
}
}
`
	f := parseSource(t, src, Options{})

	require.Len(t, f.Declarations, 1)
	d := f.Declarations[0]
	assert.Equal(t, "Book", d.Name)
	assert.Equal(t, model.Public, d.Mod)
	assert.Empty(t, d.Fields)

	require.Len(t, d.Methods, 1)
	m := d.Methods[0]
	assert.Equal(t, "getTitle", m.Name)
	assert.Equal(t, model.Public, m.Mod)
	assert.Equal(t, "String", m.ReturnType)
	assert.Equal(t, 6, m.Line)
	require.NotNil(t, m.Comment)
	assert.Equal(t, "Jane", m.Comment.Author)
	assert.Contains(t, m.Comment.Description, "Simple book class.")
}

func TestParseFieldWithoutComment(t *testing.T) {
	t.Parallel()

	f := parseSource(t, "class Book {\n    private String title;\n}\n", Options{})

	require.Len(t, f.Declarations, 1)
	assert.Equal(t, []model.Field{{Name: "title", Mod: model.Private, Type: "String"}}, f.Declarations[0].Fields)
}

func TestParseInterface(t *testing.T) {
	t.Parallel()

	f := parseSource(t, "public interface Readable {\n    String read(String path);\n}\n", Options{})

	require.Len(t, f.Declarations, 1)
	d := f.Declarations[0]
	assert.Equal(t, model.InterfaceParent, d.Parent)
	assert.Empty(t, d.Interface)
	assert.True(t, d.IsInterface())
	require.Len(t, d.Methods, 1)
	assert.Equal(t, "read", d.Methods[0].Name)
	assert.Equal(t, "String path", d.Methods[0].Args)
	assert.Nil(t, d.Methods[0].Comment)
}

func TestParseInterfaceSkipsComments(t *testing.T) {
	t.Parallel()

	src := `/** File comment */
public interface Readable {
    /**
     * Reads it.
     * @param path the path;
     */
    String read(String path);
    /** The limit. */
    int MAX = 3;
}
`
	f := parseSource(t, src, Options{})

	require.Len(t, f.Comments, 1)
	assert.Equal(t, "File comment\n", f.Comments[0].Description)

	d := f.Declarations[0]
	require.Len(t, d.Methods, 1)
	assert.Nil(t, d.Methods[0].Comment)
	assert.Equal(t, []model.Field{{Name: "MAX", Mod: model.PackagePrivate, Type: "int"}}, d.Fields)
}

func TestParseWithoutComments(t *testing.T) {
	t.Parallel()

	src := `public class Plain {
    private int a;
    public int getA() {
        return a;
    }
}
`
	f := parseSource(t, src, Options{})

	assert.Empty(t, f.Comments)
	d := f.Declarations[0]
	require.Len(t, d.Fields, 1)
	require.Len(t, d.Methods, 1)
	assert.Nil(t, d.Fields[0].Comment)
	assert.Nil(t, d.Methods[0].Comment)
}

const nestedBlockSource = `public class Counter {
    public int count(int[] xs) {
        int n = 0;
        for (int x : xs) {
            n += x;
        }
        return n;
    }
    private int total;
}
`

func TestPresenceTrackingExitsAtFirstBrace(t *testing.T) {
	t.Parallel()

	f := parseSource(t, nestedBlockSource, Options{BodyTracking: TrackPresence})

	// The loop's closing brace ends the method body, so "return n;" is
	// read as a field.
	d := f.Declarations[0]
	require.Len(t, d.Methods, 1)
	assert.Equal(t, []model.Field{
		{Name: "n", Mod: model.PackagePrivate, Type: "return"},
		{Name: "total", Mod: model.Private, Type: "int"},
	}, d.Fields)
}

func TestDepthTrackingBalancesBraces(t *testing.T) {
	t.Parallel()

	f := parseSource(t, nestedBlockSource, Options{BodyTracking: TrackDepth})

	d := f.Declarations[0]
	require.Len(t, d.Methods, 1)
	assert.Equal(t, []model.Field{{Name: "total", Mod: model.Private, Type: "int"}}, d.Fields)
}

func TestDepthTrackingBraceOnNextLine(t *testing.T) {
	t.Parallel()

	src := `class Product
{
    Product()
    {
        if (ready) { start(); }
        price = 0;
    }
    double price;
}
`
	f := parseSource(t, src, Options{BodyTracking: TrackDepth})

	d := f.Declarations[0]
	require.Len(t, d.Methods, 1)
	assert.Equal(t, []model.Field{{Name: "price", Mod: model.PackagePrivate, Type: "double"}}, d.Fields)
}

func TestOneLineMethodBody(t *testing.T) {
	t.Parallel()

	src := `public class Box {
    public int size() { return n; }
    private int n;
}
`
	for _, tracking := range []BodyTracking{TrackPresence, TrackDepth} {
		f := parseSource(t, src, Options{BodyTracking: tracking})
		d := f.Declarations[0]
		assert.Len(t, d.Methods, 1, tracking)
		assert.Equal(t, []model.Field{{Name: "n", Mod: model.Private, Type: "int"}}, d.Fields, tracking)
	}
}

func TestCommentInsideMethodBody(t *testing.T) {
	t.Parallel()

	src := `class A {
    void f() {
        /**
         * inner
         */
        int local = 1;
    }
    int x;
}
`
	f := parseSource(t, src, Options{})

	d := f.Declarations[0]
	require.Len(t, d.Methods, 1)
	assert.Nil(t, d.Methods[0].Comment)

	// Body tracking resumes after the comment, so "local" is not a field.
	// The comment stays pending and attaches to the next member.
	require.Len(t, d.Fields, 1)
	assert.Equal(t, "x", d.Fields[0].Name)
	require.NotNil(t, d.Fields[0].Comment)
	assert.Equal(t, "inner\n", d.Fields[0].Comment.Description)
}

func TestNewCommentReplacesPending(t *testing.T) {
	t.Parallel()

	src := `class A {
    /** first */
    /** second */
    void f() {
    }
}
`
	f := parseSource(t, src, Options{})

	m := f.Declarations[0].Methods[0]
	require.NotNil(t, m.Comment)
	assert.Equal(t, "second\n", m.Comment.Description)
}

func TestFieldKeepsPendingCommentForMethod(t *testing.T) {
	t.Parallel()

	src := `class Book {
    /** The title. */
    private String title;
    public String getTitle() {
        return title;
    }
}
`
	f := parseSource(t, src, Options{})

	d := f.Declarations[0]
	require.Len(t, d.Fields, 1)
	require.NotNil(t, d.Fields[0].Comment)
	assert.Equal(t, "The title.\n", d.Fields[0].Comment.Description)

	require.Len(t, d.Methods, 1)
	require.NotNil(t, d.Methods[0].Comment)
	assert.Equal(t, "The title.\n", d.Methods[0].Comment.Description)
}

func TestPendingCommentShownOnFirstFieldOnly(t *testing.T) {
	t.Parallel()

	src := `class A {
    /** the id */
    private long id;
    private long other;
    long next() {
    }
    int after;
}
`
	f := parseSource(t, src, Options{})

	d := f.Declarations[0]
	require.Len(t, d.Fields, 3)
	require.NotNil(t, d.Fields[0].Comment)
	assert.Equal(t, "the id\n", d.Fields[0].Comment.Description)
	assert.Nil(t, d.Fields[1].Comment)

	require.Len(t, d.Methods, 1)
	require.NotNil(t, d.Methods[0].Comment)
	assert.Equal(t, "the id\n", d.Methods[0].Comment.Description)

	// The method consumed the comment.
	assert.Nil(t, d.Fields[2].Comment)
}

func TestBlockCommentProseIsNotAHeader(t *testing.T) {
	t.Parallel()

	src := `/*
   This class handles orders
   and the interface to billing.
*/
public class Order {
    private int id;
}
`
	f := parseSource(t, src, Options{})

	require.Len(t, f.Declarations, 1)
	d := f.Declarations[0]
	assert.Equal(t, "Order", d.Name)
	assert.Equal(t, 5, d.Line)
	require.Len(t, d.Fields, 1)
	assert.Equal(t, "id", d.Fields[0].Name)
	assert.Empty(t, f.Comments)
}

func TestLaterDeclarationsFoldIntoFirst(t *testing.T) {
	t.Parallel()

	src := `public class First {
    int a;
}
class Second {
    int b;
    void m() {
    }
}
`
	f := parseSource(t, src, Options{})

	require.Len(t, f.Declarations, 1)
	d := f.Declarations[0]
	assert.Equal(t, "First", d.Name)
	require.Len(t, d.Fields, 2)
	assert.Equal(t, "a", d.Fields[0].Name)
	assert.Equal(t, "b", d.Fields[1].Name)
	require.Len(t, d.Methods, 1)
	assert.Equal(t, "m", d.Methods[0].Name)
}

func TestMalformedHeaderAborts(t *testing.T) {
	t.Parallel()

	src := "/** doc */\nclass Foo implements Bar extends Baz {\n    int x;\n}\n"
	_, err := Reader("src/Foo.java", strings.NewReader(src), Options{})

	var merr *MalformedDeclarationError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "src/Foo.java", merr.Path)
	assert.Equal(t, 2, merr.Line)
	assert.Equal(t, "class Foo implements Bar extends Baz {", merr.Text)
	assert.Equal(t, "implements clause before extends", merr.Reason)
	assert.Equal(t, "src/Foo.java:2: malformed declaration: implements clause before extends", err.Error())
}

func TestMalformedHeaderSkips(t *testing.T) {
	t.Parallel()

	src := "class Foo extends {\nclass Good {\n    int x;\n}\n"
	f := parseSource(t, src, Options{OnMalformed: Skip})

	require.Len(t, f.Diagnostics, 1)
	assert.Equal(t, 1, f.Diagnostics[0].Line)
	assert.Equal(t, "extends without a type name", f.Diagnostics[0].Reason)

	require.Len(t, f.Declarations, 1)
	assert.Equal(t, "Good", f.Declarations[0].Name)
	assert.Equal(t, 2, f.Declarations[0].Line)
	assert.Len(t, f.Declarations[0].Fields, 1)
}

func TestParseIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join("testdata", "Book.java")
	a, err := File(path, Options{})
	require.NoError(t, err)
	b, err := File(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFileMissing(t *testing.T) {
	t.Parallel()

	_, err := File(filepath.Join(t.TempDir(), "Missing.java"), Options{})

	var serr *SourceUnavailableError
	require.ErrorAs(t, err, &serr)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFileProduct(t *testing.T) {
	t.Parallel()

	f, err := File(filepath.Join("testdata", "Product.java"), Options{})
	require.NoError(t, err)

	assert.Equal(t, "Product.java", f.Name)
	require.Len(t, f.Comments, 1)
	assert.Equal(t, "Киса Воробьянинов", f.Comments[0].Author)
	assert.Equal(t, "2.1", f.Comments[0].Version)
	assert.Equal(t, "Класс продукции со свойствами <b>maker</b> и <b>price</b>.\n", f.Comments[0].Description)

	require.Len(t, f.Declarations, 1)
	d := f.Declarations[0]
	assert.Equal(t, "Product", d.Name)
	assert.Equal(t, model.PackagePrivate, d.Mod)

	require.Len(t, d.Fields, 2)
	assert.Equal(t, "maker", d.Fields[0].Name)
	assert.Equal(t, model.Private, d.Fields[0].Mod)
	assert.Equal(t, "Поле производитель\n", d.Fields[0].Comment.Description)
	assert.Equal(t, "price", d.Fields[1].Name)
	assert.Equal(t, model.Public, d.Fields[1].Mod)
	assert.Equal(t, "double", d.Fields[1].Type)

	require.Len(t, d.Methods, 1)
	m := d.Methods[0]
	assert.Equal(t, "Product", m.Name)
	assert.Equal(t, model.PackagePrivate, m.Mod)
	assert.Empty(t, m.ReturnType)
	require.NotNil(t, m.Comment)
	assert.Equal(t, "Product", m.Comment.See)
}

func TestFileBook(t *testing.T) {
	t.Parallel()

	f, err := File(filepath.Join("testdata", "Book.java"), Options{})
	require.NoError(t, err)

	require.Len(t, f.Comments, 1)
	assert.Equal(t, "Jane Austen", f.Comments[0].Author)
	assert.Equal(t, "1.0", f.Comments[0].Since)

	d := f.Declarations[0]
	assert.Equal(t, "Item", d.Parent)
	assert.Equal(t, "Readable", d.Interface)
	assert.Equal(t, 10, d.Line)

	assert.Equal(t, []model.Field{
		{Name: "title", Mod: model.Private, Type: "String"},
		{Name: "MAX_PAGES", Mod: model.Public, Type: "static final int"},
	}, d.Fields)

	require.Len(t, d.Methods, 3)
	ctor, get, old := d.Methods[0], d.Methods[1], d.Methods[2]

	assert.Equal(t, "Book", ctor.Name)
	assert.Equal(t, "String title, int pages", ctor.Args)
	assert.Equal(t, 19, ctor.Line)
	assert.Equal(t, []string{"title the title", "pages the page count"}, ctor.Comment.Params)

	assert.Equal(t, "getTitle", get.Name)
	assert.Equal(t, "the title", get.Comment.Returns)
	assert.Equal(t, []model.Link{{Text: "Returns the title. See", Target: "Item#name"}}, get.Comment.Links)

	assert.Equal(t, "title", old.Name)
	assert.Equal(t, model.Protected, old.Mod)
	assert.Equal(t, "use {@code getTitle}", old.Comment.Deprecated)
}
