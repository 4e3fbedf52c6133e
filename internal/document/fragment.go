// Package document holds the shared read-side model: flattening the store's
// nested tree into linear fragments, and resolving text anchors against
// them. Every formatting and content tool goes through this one module so
// fragment handling cannot drift between tools.
package document

import (
	"strings"

	"docs2mcp/internal/gdocs"
)

// Fragment is one text run lifted out of the tree: its literal text, its
// absolute start offset, and the [start,end) range of the enclosing
// paragraph. Fragments are recomputed on every resolution call; the document
// may have been mutated by a previous tool call in the same session, so
// nothing here is ever cached.
type Fragment struct {
	Text       string
	StartIndex int64
	ParaStart  int64
	ParaEnd    int64
}

// Flatten walks the document tree in order and emits one fragment per text
// run. A document with an absent or empty body yields an empty slice, not an
// error. Pure transform: the tree is never modified.
func Flatten(doc *gdocs.Document) []Fragment {
	if doc == nil || doc.Body == nil {
		return nil
	}
	var frags []Fragment
	for _, elem := range doc.Body.Content {
		if elem.Paragraph == nil {
			// Tables, section breaks and the like carry no
			// searchable text at this layer.
			continue
		}
		for _, pe := range elem.Paragraph.Elements {
			if pe.TextRun == nil {
				continue
			}
			frags = append(frags, Fragment{
				Text:       pe.TextRun.Content,
				StartIndex: pe.StartIndex,
				ParaStart:  elem.StartIndex,
				ParaEnd:    elem.EndIndex,
			})
		}
	}
	return frags
}

// Length sums the character lengths of all text runs. This is the live end
// offset used for append and full-replace planning and must be recomputed
// from a fresh fetch every time.
func Length(doc *gdocs.Document) int64 {
	var n int64
	for _, f := range Flatten(doc) {
		n += int64(len(f.Text))
	}
	return n
}

// PlainText concatenates all run text in document order.
func PlainText(doc *gdocs.Document) string {
	var b strings.Builder
	for _, f := range Flatten(doc) {
		b.WriteString(f.Text)
	}
	return b.String()
}
