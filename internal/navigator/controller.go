package navigator

import (
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultScrollOffset = 16
	activeClass         = "active"
	openClass           = "open"
)

// Config names the DOM ids the controller operates on. Only ContentID is
// required; every other element silently disables its feature when absent.
type Config struct {
	ContentID string

	DesktopTOCID string
	MobileTOCID  string

	MobileTriggerID string
	MobileModalID   string
	MobileCloseID   string
	MobileOverlayID string

	// LevelSelectID names a select control choosing the deepest heading
	// level shown in the table of contents.
	LevelSelectID string

	SlideoverID        string
	SlideoverOverlayID string
	SlideoverCloseID   string

	// ScrollOffset is the margin kept above a heading when scrolling to it.
	ScrollOffset float64
}

// Controller is the navigation runtime for one rendered document. Create one
// per document with New, then drive it through Initialize and Dispose. It is
// re-enterable: Initialize on an initialized controller tears down first.
type Controller struct {
	page Page
	log  *slog.Logger

	cfg        Config
	onNavigate func(path string)

	initialized bool
	cleanups    []func()
	tocCleanups []func()
	panels      map[string][]func()

	content     Element
	headings    []Element
	tocHeadings []Element
	anchors     map[string]string

	desktopEntries []Element
	mobileEntries  []Element
	activeIndex    int

	framePending  bool
	cancelPending func()

	modalOpen     bool
	slideoverOpen bool
}

// New creates a controller for one rendered document.
func New(page Page, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{page: page, log: log, activeIndex: -1}
}

// Initialize wires the controller to the page. It fails only when the
// content container cannot be found. A container without headings still
// succeeds: the table of contents and scroll-spy are skipped, but link
// interception is always attached so internal links never fall through to a
// full-page navigation.
//
// onNavigate is invoked with the internal path (leading slash removed)
// whenever a same-origin, different-path link is clicked inside tracked
// content.
func (c *Controller) Initialize(onNavigate func(path string), cfg Config) bool {
	if c.initialized {
		c.Dispose()
	}

	c.cfg = cfg
	if c.cfg.ScrollOffset <= 0 {
		c.cfg.ScrollOffset = defaultScrollOffset
	}

	content := c.page.ElementByID(cfg.ContentID)
	if content == nil {
		c.log.Error("content container not found", "id", cfg.ContentID)
		return false
	}
	c.content = content
	c.onNavigate = onNavigate
	c.panels = make(map[string][]func())
	c.activeIndex = -1

	// The anchor table must be complete before any listener can resolve a
	// fragment, so everything below stays synchronous and in this order.
	c.collectHeadings()
	c.buildAnchorTable()
	c.buildTOC()
	c.cleanups = append(c.cleanups, c.interceptLinks(content)...)
	c.wireScrollSpy()
	c.wirePanels()
	c.wireLevelSelect()

	c.initialized = true
	return true
}

// Dispose detaches every registered listener and clears the host callback.
// Safe to call repeatedly; Initialize may be called again afterward.
func (c *Controller) Dispose() {
	for _, fn := range c.cleanups {
		fn()
	}
	c.cleanups = nil
	for _, fn := range c.tocCleanups {
		fn()
	}
	c.tocCleanups = nil
	for _, fns := range c.panels {
		for _, fn := range fns {
			fn()
		}
	}
	c.panels = nil
	if c.cancelPending != nil {
		c.cancelPending()
		c.cancelPending = nil
	}

	c.onNavigate = nil
	c.content = nil
	c.headings = nil
	c.tocHeadings = nil
	c.anchors = nil
	c.desktopEntries = nil
	c.mobileEntries = nil
	c.activeIndex = -1
	c.framePending = false
	c.modalOpen = false
	c.slideoverOpen = false
	c.initialized = false
}

// InitializeSlideoverContent re-runs link interception against freshly
// injected content inside the slideover. Listeners attached by a previous
// call for the same container are replaced, so repeated calls never
// double-invoke the host callback.
func (c *Controller) InitializeSlideoverContent(containerID string) {
	container := c.page.ElementByID(containerID)
	if container == nil {
		return
	}
	if c.panels == nil {
		c.panels = make(map[string][]func())
	}
	for _, fn := range c.panels[containerID] {
		fn()
	}
	c.panels[containerID] = c.interceptLinks(container)
}

// ScrollToHash resolves a raw fragment value through the anchor lookup table
// and scrolls to the target. An empty fragment falls back to the page's
// current hash. Unresolvable targets are ignored.
func (c *Controller) ScrollToHash(fragment string) {
	if fragment == "" {
		fragment = c.page.Location().Hash
	}
	if fragment == "" {
		return
	}
	c.scrollToFragment(fragment)
}

// collectHeadings gathers the content headings and gives any heading without
// an id an auto-generated one (heading-0, heading-1, ...) for in-page
// anchoring. This numbering is independent of the transformer's id scheme.
func (c *Controller) collectHeadings() {
	c.headings = c.content.Headings()
	for i, h := range c.headings {
		if h.ID() == "" {
			h.SetID("heading-" + strconv.Itoa(i))
		}
	}
	c.tocHeadings = c.filterTOCHeadings()
}

// buildAnchorTable maps every known id to its owning heading's current id:
// the heading's own id, the preserved original id, and the ids of any
// elements nested inside the heading.
func (c *Controller) buildAnchorTable() {
	c.anchors = make(map[string]string, len(c.headings)*2)
	for _, h := range c.headings {
		id := h.ID()
		c.anchors[id] = id
		if orig, ok := h.Attr("data-original-id"); ok && orig != "" {
			c.anchors[orig] = id
		}
		for _, nested := range h.DescendantIDs() {
			if nested != "" {
				c.anchors[nested] = id
			}
		}
	}
}

// interceptLinks attaches the click policy to every anchor inside container
// and returns the listener removal funcs.
func (c *Controller) interceptLinks(container Element) []func() {
	links := container.Links()
	removes := make([]func(), 0, len(links))
	for _, a := range links {
		removes = append(removes, a.OnClick(c.handleLinkClick))
	}
	return removes
}

// handleLinkClick applies the interception policy to one anchor click.
func (c *Controller) handleLinkClick(ev *Click) {
	if ev.CtrlOrMeta {
		return
	}
	href := ev.Href
	if href == "" || href == "#" {
		return
	}

	if strings.HasPrefix(href, "#") {
		ev.PreventDefault()
		c.scrollToFragment(href[1:])
		return
	}

	u, err := url.Parse(href)
	if err != nil {
		return
	}
	if u.Scheme == "mailto" || u.Scheme == "tel" {
		return
	}

	loc := c.page.Location()
	if u.Host != "" && u.Scheme+"://"+u.Host != loc.Origin {
		return
	}

	if u.Path == "" || u.Path == loc.Path {
		if u.Fragment != "" {
			ev.PreventDefault()
			c.scrollToFragment(u.Fragment)
		}
		return
	}

	// Same origin, different path: show it in the slideover and let the
	// host fetch the document.
	ev.PreventDefault()
	c.OpenSlideover()
	if c.onNavigate != nil {
		c.onNavigate(strings.TrimPrefix(u.Path, "/"))
	}
}

// scrollToFragment resolves a raw fragment through the anchor table, falling
// back to the literal value, and scrolls to the element if it exists.
func (c *Controller) scrollToFragment(raw string) {
	id := raw
	const prefix = "heading="
	if len(id) >= len(prefix) && strings.EqualFold(id[:len(prefix)], prefix) {
		id = id[len(prefix):]
	}
	if mapped, ok := c.anchors[id]; ok {
		id = mapped
	}
	target := c.page.ElementByID(id)
	if target == nil {
		return
	}
	c.scrollToElement(target)
	c.page.ReplaceHash(id)
}

func (c *Controller) scrollToElement(target Element) {
	y := target.Top() - c.cfg.ScrollOffset
	if y < 0 {
		y = 0
	}
	c.scroller().ScrollTo(y)
}

// scroller is the element whose scroll position tracks the document: the
// content container when it scrolls its own content, the page otherwise.
func (c *Controller) scroller() Element {
	if c.content != nil && c.content.Scrollable() {
		return c.content
	}
	return c.page.Viewport()
}
