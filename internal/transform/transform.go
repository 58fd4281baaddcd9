// Package transform rewrites word-processor HTML exports (Google Docs style)
// into safe, linkable web content: it unwraps the body, keeps only the list
// numbering styles, assigns stable heading ids, and rewrites cross-document
// links against the document registry.
package transform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/docpress/docpress/internal/registry"
)

// Transformer converts raw export HTML into processed HTML. It is stateless
// and safe for concurrent use; the same input against the same registry
// always produces byte-identical output.
type Transformer struct {
	reg *registry.Registry
}

// New creates a transformer backed by the given document registry.
func New(reg *registry.Registry) *Transformer {
	return &Transformer{reg: reg}
}

// Process rewrites raw export HTML and returns the processed markup.
// It never fails: input that cannot be parsed is returned unchanged,
// and every rewrite rule degrades to leaving the markup as-is.
func (t *Transformer) Process(rawHTML string) string {
	nodes, styles, ok := parse(rawHTML)
	if !ok {
		return rawHTML
	}

	_, origToGen := assignHeadingIDs(nodes)
	t.rewriteLinks(nodes, origToGen)

	var b strings.Builder
	if css := filterListStyles(styles); css != "" {
		b.WriteString("<style>")
		b.WriteString(css)
		b.WriteString("</style>")
	}
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return rawHTML
		}
	}
	return b.String()
}

// parse builds the working node set for one transform call. Documents with a
// body element are unwrapped to the body's children; bare fragments are
// parsed in body context so nothing is invented around them. Style elements
// are detached from the tree and their text returned separately.
func parse(raw string) ([]*html.Node, []string, bool) {
	if containsBodyTag(raw) {
		doc, err := html.Parse(strings.NewReader(raw))
		if err != nil {
			return nil, nil, false
		}
		styles := detachStyles(doc)
		body := findElement(doc, atom.Body)
		if body == nil {
			return nil, nil, false
		}
		var nodes []*html.Node
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
		return nodes, styles, true
	}

	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	frag, err := html.ParseFragment(strings.NewReader(raw), ctx)
	if err != nil {
		return nil, nil, false
	}
	var nodes []*html.Node
	var styles []string
	for _, n := range frag {
		if isElement(n, atom.Style) {
			styles = append(styles, textContent(n))
			continue
		}
		styles = append(styles, detachStyles(n)...)
		nodes = append(nodes, n)
	}
	return nodes, styles, true
}

func containsBodyTag(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "<body")
}
