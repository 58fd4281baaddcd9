// Package memdom is an in-memory implementation of the navigator's Page and
// Element abstractions, backed by golang.org/x/net/html. It stands in for a
// real DOM when exercising the navigation runtime headlessly: tests build a
// page from markup, assign geometry, and dispatch clicks, scrolls, and key
// presses.
package memdom

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/docpress/docpress/internal/navigator"
)

// Page is a headless navigator.Page.
type Page struct {
	root     *Elem
	viewport *Elem
	loc      navigator.Location

	hashes     []string
	bodyLocked bool

	nextID  int
	keyFns  []handlerEntry[func(string)]
	frames  []func()
	timers  map[int]func()
	timerID int
}

type handlerEntry[T any] struct {
	id int
	fn T
}

// New parses markup into a page at the given location.
func New(markup string, loc navigator.Location) *Page {
	p := &Page{loc: loc, timers: make(map[int]func())}
	p.root = &Elem{page: p, tag: "#root"}
	p.root.children = parseInto(p, p.root, markup, "body")
	p.viewport = &Elem{page: p, tag: "html", scrollable: true}
	return p
}

func parseInto(p *Page, parent *Elem, markup, contextTag string) []*Elem {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     contextTag,
		DataAtom: atom.Lookup([]byte(contextTag)),
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil
	}
	var out []*Elem
	for _, n := range nodes {
		out = append(out, build(p, parent, n))
	}
	return out
}

func build(p *Page, parent *Elem, n *html.Node) *Elem {
	e := &Elem{page: p, parent: parent}
	switch n.Type {
	case html.TextNode:
		e.text = n.Data
	case html.ElementNode:
		e.tag = n.Data
		e.attrs = make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			e.attrs[a.Key] = a.Val
		}
		if cls, ok := e.attrs["class"]; ok {
			e.classes = strings.Fields(cls)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.children = append(e.children, build(p, e, c))
	}
	return e
}

// ElementByID implements navigator.Page.
func (p *Page) ElementByID(id string) navigator.Element {
	if id == "" {
		return nil
	}
	if e := p.ByID(id); e != nil {
		return e
	}
	return nil
}

// ByID returns the concrete element for test setup, or nil.
func (p *Page) ByID(id string) *Elem {
	return findByID(p.root, id)
}

func findByID(e *Elem, id string) *Elem {
	if e.attrs["id"] == id {
		return e
	}
	for _, c := range e.children {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func (p *Page) Viewport() navigator.Element { return p.viewport }

// ViewportElem returns the concrete viewport for test setup.
func (p *Page) ViewportElem() *Elem { return p.viewport }

func (p *Page) Location() navigator.Location { return p.loc }

func (p *Page) ReplaceHash(fragment string) {
	p.loc.Hash = fragment
	p.hashes = append(p.hashes, fragment)
}

// ReplacedHashes returns every fragment passed to ReplaceHash, in order.
func (p *Page) ReplacedHashes() []string { return p.hashes }

func (p *Page) LockBodyScroll(locked bool) { p.bodyLocked = locked }

// BodyLocked reports the current body scroll lock state.
func (p *Page) BodyLocked() bool { return p.bodyLocked }

func (p *Page) After(d time.Duration, fn func()) (cancel func()) {
	p.timerID++
	id := p.timerID
	p.timers[id] = fn
	return func() { delete(p.timers, id) }
}

// RunTimers fires every pending deferred callback in scheduling order.
func (p *Page) RunTimers() {
	for len(p.timers) > 0 {
		ids := make([]int, 0, len(p.timers))
		for id := range p.timers {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fn := p.timers[id]
			delete(p.timers, id)
			fn()
		}
	}
}

// PendingTimers reports how many deferred callbacks are waiting.
func (p *Page) PendingTimers() int { return len(p.timers) }

func (p *Page) RequestFrame(fn func()) { p.frames = append(p.frames, fn) }

// RunFrames executes the queued animation-frame callbacks.
func (p *Page) RunFrames() {
	frames := p.frames
	p.frames = nil
	for _, fn := range frames {
		fn()
	}
}

func (p *Page) OnKeyDown(fn func(key string)) (remove func()) {
	p.nextID++
	id := p.nextID
	p.keyFns = append(p.keyFns, handlerEntry[func(string)]{id: id, fn: fn})
	return func() { p.keyFns = removeHandler(p.keyFns, id) }
}

// Keydown dispatches a page-level key event.
func (p *Page) Keydown(key string) {
	for _, h := range append([]handlerEntry[func(string)]{}, p.keyFns...) {
		h.fn(key)
	}
}

func removeHandler[T any](hs []handlerEntry[T], id int) []handlerEntry[T] {
	out := hs[:0]
	for _, h := range hs {
		if h.id != id {
			out = append(out, h)
		}
	}
	return out
}
