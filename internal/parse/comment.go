package parse

import (
	"strings"
	"unicode"

	"github.com/phobologic/javadoc2html/internal/model"
)

// tag binds a block-tag marker to the comment field it fills. The order of
// tags is the priority order: only the first marker found on a line counts.
type tag struct {
	marker string
	apply  func(c *model.Comment, line string, at int)
}

var tags = []tag{
	{"@author", func(c *model.Comment, line string, at int) { c.Author = tagValue(line, "@author", at) }},
	{"@version", func(c *model.Comment, line string, at int) { c.Version = tagValue(line, "@version", at) }},
	{"@since", func(c *model.Comment, line string, at int) { c.Since = tagValue(line, "@since", at) }},
	{"@deprecated", func(c *model.Comment, line string, at int) { c.Deprecated = tagValue(line, "@deprecated", at) }},
	{"@see", func(c *model.Comment, line string, at int) { c.See = tagValue(line, "@see", at) }},
	{"@throws", func(c *model.Comment, line string, at int) { c.Throws = tagValue(line, "@throws", at) }},
	{"@exception", func(c *model.Comment, line string, at int) { c.Exception = tagValue(line, "@exception", at) }},
	{"@param", func(c *model.Comment, line string, at int) {
		c.Params = append(c.Params, tagValue(line, "@param", at))
	}},
	{"@return", func(c *model.Comment, line string, at int) { c.Returns = tagValue(line, "@return", at) }},
	{"@link", addLink},
}

// commentBuilder accumulates the lines of one open documentation comment.
type commentBuilder struct {
	c model.Comment
}

// openComment starts a comment on a line containing the open marker. Text
// after the marker is content. When the block also closes on this line the
// comment is complete and done is true.
func openComment(line string) (b commentBuilder, done bool) {
	open := strings.Index(line, commentOpen)
	if open < 0 {
		return b, false
	}
	if end := strings.Index(line[open+2:], commentClose); end >= 0 {
		end += open + 2
		if end > open+3 {
			b.feedText(line[open+3 : end])
		}
		return b, true
	}
	b.feedText(line[open+3:])
	return b, false
}

// feedText feeds s unless it is blank.
func (b *commentBuilder) feedText(s string) {
	if strings.TrimSpace(s) != "" {
		b.feed(s)
	}
}

// feed classifies one content line of the comment.
func (b *commentBuilder) feed(line string) {
	for _, t := range tags {
		if at := markerIndex(line, t.marker); at >= 0 {
			t.apply(&b.c, line, at)
			return
		}
	}
	b.c.Description += stripContinuation(line) + "\n"
}

// finish freezes the comment. The builder must not be fed afterwards.
func (b *commentBuilder) finish() model.Comment {
	return b.c
}

// markerIndex returns the index of the first occurrence of marker in line
// that is not immediately followed by a letter or digit, or -1.
func markerIndex(line, marker string) int {
	from := 0
	for {
		i := strings.Index(line[from:], marker)
		if i < 0 {
			return -1
		}
		i += from
		next := i + len(marker)
		if next >= len(line) || !isWordByte(line[next]) {
			return i
		}
		from = next
	}
}

func isWordByte(b byte) bool {
	return b < 0x80 && (unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b)))
}

// tagValue is the text after the marker at position at, up to a repeated
// occurrence of the same marker.
func tagValue(line, marker string, at int) string {
	v := line[at+len(marker):]
	if j := strings.Index(v, marker); j >= 0 {
		v = v[:j]
	}
	return strings.TrimSpace(v)
}

// addLink records the positional pair for an inline {@link}: the text
// leading up to the tag and the target that follows it.
func addLink(c *model.Comment, line string, at int) {
	text := stripContinuation(line[:at])
	text = strings.TrimSpace(strings.TrimSuffix(text, "{"))

	target := tagValue(line, "@link", at)
	if k := strings.Index(target, "}"); k >= 0 {
		target = strings.TrimSpace(target[:k])
	}
	c.Links = append(c.Links, model.Link{Text: text, Target: target})
}

// stripContinuation removes surrounding whitespace and one leading '*'.
func stripContinuation(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "*")
	return strings.TrimSpace(s)
}
