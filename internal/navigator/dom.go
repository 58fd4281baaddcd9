// Package navigator is the client-side navigation runtime for processed
// documents: it builds tables of contents, tracks scroll position, and
// intercepts links using the identifiers the transformer embeds in the
// markup. The controller drives a rendered page through the small Page and
// Element abstractions below, so it carries no dependency on any particular
// host technology.
package navigator

import "time"

// Location describes where the rendered page lives.
type Location struct {
	Origin string // scheme://host[:port]
	Path   string
	Hash   string // current fragment, without the leading '#'
}

// Page is the rendered-document surface the controller drives.
type Page interface {
	// ElementByID returns the element with the given id, or nil.
	ElementByID(id string) Element

	// Viewport is the page-level scrolling element, used when the content
	// container does not scroll its own content.
	Viewport() Element

	Location() Location

	// ReplaceHash updates the URL fragment through history replacement,
	// never through a mechanism that triggers route handling.
	ReplaceHash(fragment string)

	// LockBodyScroll prevents or restores scrolling of the page body while
	// a panel is open.
	LockBodyScroll(locked bool)

	// After runs fn once the delay elapses. The returned func cancels it.
	After(d time.Duration, fn func()) (cancel func())

	// RequestFrame defers fn to the next animation frame.
	RequestFrame(fn func())

	// OnKeyDown registers a page-level key handler. The returned func
	// detaches it.
	OnKeyDown(fn func(key string)) (remove func())
}

// Element is one node of the rendered page.
type Element interface {
	ID() string
	SetID(id string)
	TagName() string
	Attr(name string) (string, bool)

	// Text is the element's visible text content.
	Text() string

	// Value is the current value of a form control.
	Value() string

	AddClass(class string)
	RemoveClass(class string)

	// Headings returns every h1..h6 descendant in document order.
	Headings() []Element

	// Links returns every descendant anchor that carries an href.
	Links() []Element

	// DescendantIDs returns the ids of elements nested beneath this one.
	DescendantIDs() []string

	// AppendHTML appends markup and returns the first appended element.
	AppendHTML(markup string) Element

	// Clear removes all children.
	Clear()

	// Top is the element's offset from the top of its scrolling ancestor.
	Top() float64
	Height() float64
	ScrollTop() float64
	ScrollHeight() float64

	// Scrollable reports whether the element scrolls its own content.
	Scrollable() bool

	// ScrollTo smooth-scrolls the element's content to the given offset.
	ScrollTo(top float64)

	OnClick(fn func(*Click)) (remove func())
	OnScroll(fn func()) (remove func())
	OnChange(fn func()) (remove func())
}

// Click is one click event on an anchor.
type Click struct {
	// Href is the anchor's href attribute as authored.
	Href string

	// CtrlOrMeta reports whether a ctrl/cmd modifier was held, in which
	// case the browser default (open in new tab) must apply.
	CtrlOrMeta bool

	prevented bool
}

// PreventDefault suppresses the browser's default handling.
func (c *Click) PreventDefault() { c.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (c *Click) DefaultPrevented() bool { return c.prevented }
