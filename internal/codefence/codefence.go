// Package codefence locates fenced code blocks in rendered HTML pages
// and splices replacement markup over them.
package codefence

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// _fencePattern matches the exact markup that Markdown renderers emit
// for a fenced code block carrying a language tag.
// Anything looser than this, including a pre or code tag
// with extra attributes, is not a fence and is left alone.
var _fencePattern = regexp.MustCompile(
	`(?s)<pre><code class="language-([0-9A-Za-z_+#.-]+)">(.*?)</code></pre>`)

// A Block is a single fenced code block found in a document.
type Block struct {
	// Language is the tag following "language-"
	// in the opening fence, as written in the document.
	Language string

	// Start and End delimit the entire block in the document,
	// from "<pre>" through "</pre>".
	Start, End int

	payload string
}

// Scan finds all fenced code blocks in doc, in document order.
func Scan(doc string) []Block {
	var blocks []Block
	for _, m := range _fencePattern.FindAllStringSubmatchIndex(doc, -1) {
		blocks = append(blocks, Block{
			Start:    m[0],
			End:      m[1],
			Language: doc[m[2]:m[3]],
			payload:  doc[m[4]:m[5]],
		})
	}
	return blocks
}

// Source returns the code inside the block
// with HTML entities decoded back into plain text.
//
// Decoding is a single pass:
// "&amp;lt;" becomes "&lt;", never "<".
func (b *Block) Source() string {
	return html.UnescapeString(b.payload)
}

// A Replacement splices new markup over a range of a document.
type Replacement struct {
	// Start and End delimit the range being replaced.
	// Typically these come from a [Block].
	Start, End int

	// Markup is the text written in place of the range.
	Markup string
}

// Apply rewrites doc with the given replacements,
// copying everything outside the replaced ranges byte for byte.
//
// Replacements must be sorted by position and must not overlap.
// Apply panics otherwise.
func Apply(doc string, repls []Replacement) string {
	var sb strings.Builder
	sb.Grow(len(doc))

	var last int
	for _, r := range repls {
		if r.Start < last || r.End < r.Start || r.End > len(doc) {
			panic(fmt.Sprintf("replacement [%d, %d] is out of bounds [%d, %d]",
				r.Start, r.End, last, len(doc)))
		}
		sb.WriteString(doc[last:r.Start])
		sb.WriteString(r.Markup)
		last = r.End
	}
	sb.WriteString(doc[last:])
	return sb.String()
}
