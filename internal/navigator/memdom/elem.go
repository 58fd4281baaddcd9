package memdom

import (
	"strings"

	"github.com/docpress/docpress/internal/navigator"
)

// Elem is a headless navigator.Element.
type Elem struct {
	page   *Page
	parent *Elem

	tag      string
	text     string // set only for text nodes (tag == "")
	attrs    map[string]string
	classes  []string
	children []*Elem

	top, height             float64
	scrollTop, scrollHeight float64
	scrollable              bool

	clickFns  []handlerEntry[func(*navigator.Click)]
	scrollFns []handlerEntry[func()]
	changeFns []handlerEntry[func()]
}

func (e *Elem) ID() string { return e.attrs["id"] }

func (e *Elem) SetID(id string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs["id"] = id
}

func (e *Elem) TagName() string { return e.tag }

func (e *Elem) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute, for test setup.
func (e *Elem) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

func (e *Elem) Text() string {
	var b strings.Builder
	e.walk(func(c *Elem) {
		if c.tag == "" {
			b.WriteString(c.text)
		}
	})
	return b.String()
}

func (e *Elem) Value() string { return e.attrs["value"] }

func (e *Elem) AddClass(class string) {
	for _, c := range e.classes {
		if c == class {
			return
		}
	}
	e.classes = append(e.classes, class)
}

func (e *Elem) RemoveClass(class string) {
	out := e.classes[:0]
	for _, c := range e.classes {
		if c != class {
			out = append(out, c)
		}
	}
	e.classes = out
}

// HasClass reports whether the element carries the class, for assertions.
func (e *Elem) HasClass(class string) bool {
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Elem) Headings() []navigator.Element {
	var out []navigator.Element
	e.walkDescendants(func(c *Elem) {
		switch c.tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			out = append(out, c)
		}
	})
	return out
}

func (e *Elem) Links() []navigator.Element {
	var out []navigator.Element
	e.walkDescendants(func(c *Elem) {
		if c.tag == "a" {
			if _, ok := c.attrs["href"]; ok {
				out = append(out, c)
			}
		}
	})
	return out
}

func (e *Elem) DescendantIDs() []string {
	var out []string
	e.walkDescendants(func(c *Elem) {
		if id, ok := c.attrs["id"]; ok && id != "" {
			out = append(out, id)
		}
	})
	return out
}

func (e *Elem) AppendHTML(markup string) navigator.Element {
	added := parseInto(e.page, e, markup, e.tag)
	e.children = append(e.children, added...)
	for _, c := range added {
		if c.tag != "" {
			return c
		}
	}
	return nil
}

func (e *Elem) Clear() { e.children = nil }

func (e *Elem) Top() float64          { return e.top }
func (e *Elem) Height() float64       { return e.height }
func (e *Elem) ScrollTop() float64    { return e.scrollTop }
func (e *Elem) ScrollHeight() float64 { return e.scrollHeight }
func (e *Elem) Scrollable() bool      { return e.scrollable }

func (e *Elem) ScrollTo(top float64) { e.scrollTop = top }

// SetGeometry assigns the element's offset and height, for test setup.
func (e *Elem) SetGeometry(top, height float64) {
	e.top, e.height = top, height
}

// SetScrollMetrics marks the element as a scroll container, for test setup.
func (e *Elem) SetScrollMetrics(scrollHeight float64, scrollable bool) {
	e.scrollHeight, e.scrollable = scrollHeight, scrollable
}

func (e *Elem) OnClick(fn func(*navigator.Click)) (remove func()) {
	id := e.nextHandlerID()
	e.clickFns = append(e.clickFns, handlerEntry[func(*navigator.Click)]{id: id, fn: fn})
	return func() { e.clickFns = removeHandler(e.clickFns, id) }
}

func (e *Elem) OnScroll(fn func()) (remove func()) {
	id := e.nextHandlerID()
	e.scrollFns = append(e.scrollFns, handlerEntry[func()]{id: id, fn: fn})
	return func() { e.scrollFns = removeHandler(e.scrollFns, id) }
}

func (e *Elem) OnChange(fn func()) (remove func()) {
	id := e.nextHandlerID()
	e.changeFns = append(e.changeFns, handlerEntry[func()]{id: id, fn: fn})
	return func() { e.changeFns = removeHandler(e.changeFns, id) }
}

func (e *Elem) nextHandlerID() int {
	e.page.nextID++
	return e.page.nextID
}

// Click dispatches a click on the element and reports whether any handler
// prevented the default action.
func (e *Elem) Click(ctrlOrMeta bool) bool {
	ev := &navigator.Click{Href: e.attrs["href"], CtrlOrMeta: ctrlOrMeta}
	for _, h := range append([]handlerEntry[func(*navigator.Click)]{}, e.clickFns...) {
		h.fn(ev)
	}
	return ev.DefaultPrevented()
}

// ClickCount reports how many click handlers are attached, for assertions.
func (e *Elem) ClickCount() int { return len(e.clickFns) }

// Scroll sets the scroll position and fires the element's scroll handlers.
func (e *Elem) Scroll(top float64) {
	e.scrollTop = top
	for _, h := range append([]handlerEntry[func()]{}, e.scrollFns...) {
		h.fn()
	}
}

// Change sets the control's value and fires its change handlers.
func (e *Elem) Change(value string) {
	e.SetAttr("value", value)
	for _, h := range append([]handlerEntry[func()]{}, e.changeFns...) {
		h.fn()
	}
}

// FirstByTag returns the first descendant with the given tag, for test setup.
func (e *Elem) FirstByTag(tag string) *Elem {
	if all := e.ByTag(tag); len(all) > 0 {
		return all[0]
	}
	return nil
}

// ByTag returns every descendant with the given tag in document order.
func (e *Elem) ByTag(tag string) []*Elem {
	var out []*Elem
	e.walkDescendants(func(c *Elem) {
		if c.tag == tag {
			out = append(out, c)
		}
	})
	return out
}

func (e *Elem) walk(visit func(*Elem)) {
	visit(e)
	for _, c := range e.children {
		c.walk(visit)
	}
}

func (e *Elem) walkDescendants(visit func(*Elem)) {
	for _, c := range e.children {
		c.walk(visit)
	}
}
