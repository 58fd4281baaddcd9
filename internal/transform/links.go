package transform

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// docLinkRE matches a Google Docs document URL and captures the document id.
// The optional /u/N/ segment appears when the author was signed in to more
// than one account.
var docLinkRE = regexp.MustCompile(`^https?://docs\.google\.com/document/(?:u/\d+/)?d/([A-Za-z0-9_-]+)`)

// rewriteLinks applies the link rewrite rules to every anchor with an href.
// Anything that matches no rule, or whose document id is not registered,
// is left byte-for-byte unchanged.
func (t *Transformer) rewriteLinks(nodes []*html.Node, origToGen map[string]string) {
	for _, root := range nodes {
		walk(root, func(n *html.Node) {
			if !isElement(n, atom.A) {
				return
			}
			href, ok := attr(n, "href")
			if !ok || href == "" {
				return
			}
			if rewritten, changed := t.rewriteHref(href, origToGen); changed {
				setAttr(n, "href", rewritten)
			}
		})
	}
}

// rewriteHref classifies one href and returns its replacement. The second
// return value is false when the href should stay untouched.
func (t *Transformer) rewriteHref(href string, origToGen map[string]string) (string, bool) {
	// Fragment-only link within the same document.
	if strings.HasPrefix(href, "#") {
		frag := stripHeadingPrefix(href[1:])
		if gen, ok := origToGen[frag]; ok {
			return "#" + gen, true
		}
		return "", false
	}

	// Direct document link.
	if m := docLinkRE.FindStringSubmatch(href); m != nil {
		return t.rewriteDocumentLink(href, m[1])
	}

	// Redirect-wrapped link: unwrap and apply the direct rule to the
	// destination. An unregistered destination keeps the original wrapper.
	if dest, ok := unwrapRedirect(href); ok {
		if m := docLinkRE.FindStringSubmatch(dest); m != nil {
			if rewritten, changed := t.rewriteDocumentLink(dest, m[1]); changed {
				return rewritten, true
			}
		}
		return "", false
	}

	return "", false
}

// rewriteDocumentLink swaps a registered document's URL for its web route,
// carrying over any fragment after stripping the heading= prefix and
// percent-decoding it.
func (t *Transformer) rewriteDocumentLink(href, externalID string) (string, bool) {
	doc, ok := t.reg.Lookup(externalID)
	if !ok {
		return "", false
	}
	_, frag, hasFrag := strings.Cut(href, "#")
	if !hasFrag || frag == "" {
		return doc.Route, true
	}
	frag = stripHeadingPrefix(frag)
	if decoded, err := url.PathUnescape(frag); err == nil {
		frag = decoded
	}
	return doc.Route + "#" + frag, true
}

// unwrapRedirect extracts the true destination from a Google redirect URL
// (https://www.google.com/url?q=...).
func unwrapRedirect(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Host)
	if host != "www.google.com" && host != "google.com" {
		return "", false
	}
	if u.Path != "/url" {
		return "", false
	}
	dest := u.Query().Get("q")
	if dest == "" {
		return "", false
	}
	return dest, true
}

// stripHeadingPrefix removes a case-insensitive "heading=" prefix from a
// fragment value.
func stripHeadingPrefix(frag string) string {
	const prefix = "heading="
	if len(frag) >= len(prefix) && strings.EqualFold(frag[:len(prefix)], prefix) {
		return frag[len(prefix):]
	}
	return frag
}
