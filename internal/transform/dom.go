package transform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// walk visits n and every descendant in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.DataAtom == a
}

// findElement returns the first element with the given atom, depth-first.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if isElement(n, a) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// headingLevel returns 1..6 for h1..h6 elements, 0 otherwise.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// textContent concatenates all text nodes beneath n.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// setAttr replaces an existing attribute value or appends a new attribute.
func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// detachStyles removes every style element beneath n and returns their text.
func detachStyles(n *html.Node) []string {
	var found []*html.Node
	walk(n, func(c *html.Node) {
		if isElement(c, atom.Style) {
			found = append(found, c)
		}
	})
	styles := make([]string, 0, len(found))
	for _, s := range found {
		styles = append(styles, textContent(s))
		if s.Parent != nil {
			s.Parent.RemoveChild(s)
		}
	}
	return styles
}
