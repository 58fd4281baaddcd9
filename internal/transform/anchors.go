package transform

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// HeadingAnchor records one heading's identifier assignment during a
// transform call. Anchors are produced fresh on every call and never stored.
type HeadingAnchor struct {
	GeneratedID string
	OriginalID  string
	Text        string
	Level       int
}

// assignHeadingIDs gives every h1..h6 a deterministic id derived from its
// text, in document order. A pre-existing id is preserved on the element as
// data-original-id before being overwritten. The returned map translates
// original ids to generated ones for same-document fragment links.
//
// Two headings with identical text would collide on the same id, so later
// occurrences get a numeric suffix (-2, -3, ...). Headings whose text
// produces an empty id are left untouched.
func assignHeadingIDs(nodes []*html.Node) ([]HeadingAnchor, map[string]string) {
	var anchors []HeadingAnchor
	origToGen := make(map[string]string)
	seen := make(map[string]int)

	for _, root := range nodes {
		walk(root, func(n *html.Node) {
			level := headingLevel(n)
			if level == 0 {
				return
			}
			text := textContent(n)
			id := slugify(text)
			if id == "" {
				return
			}
			seen[id]++
			if c := seen[id]; c > 1 {
				id = fmt.Sprintf("%s-%d", id, c)
			}

			anchor := HeadingAnchor{GeneratedID: id, Text: text, Level: level}
			if orig, ok := attr(n, "id"); ok && orig != "" {
				setAttr(n, "data-original-id", orig)
				origToGen[orig] = id
				anchor.OriginalID = orig
			}
			setAttr(n, "id", id)
			anchors = append(anchors, anchor)
		})
	}
	return anchors, origToGen
}

// slugify derives a heading id from its text: lowercase, keep letters,
// digits, and periods, collapse every other run of characters into a single
// hyphen, and trim leading/trailing hyphens. Periods survive so section
// numbers like "10.3.1" stay intact.
func slugify(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}
