package navigator

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

const (
	// spyTolerance is how far below the viewport top a heading may sit and
	// still count as the current one.
	spyTolerance = 100

	defaultMaxTOCLevel = 3
)

// filterTOCHeadings keeps the headings shown in the table of contents,
// bounded by the level selector's current value.
func (c *Controller) filterTOCHeadings() []Element {
	max := c.maxTOCLevel()
	out := make([]Element, 0, len(c.headings))
	for _, h := range c.headings {
		if lvl := headingLevel(h); lvl > 0 && lvl <= max {
			out = append(out, h)
		}
	}
	return out
}

func (c *Controller) maxTOCLevel() int {
	if c.cfg.LevelSelectID == "" {
		return defaultMaxTOCLevel
	}
	sel := c.page.ElementByID(c.cfg.LevelSelectID)
	if sel == nil {
		return defaultMaxTOCLevel
	}
	if n, err := strconv.Atoi(strings.TrimSpace(sel.Value())); err == nil && n >= 1 && n <= 6 {
		return n
	}
	return defaultMaxTOCLevel
}

func headingLevel(e Element) int {
	tag := strings.ToLower(e.TagName())
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// buildTOC populates the desktop and mobile lists from the current headings
// and wires entry clicks. Heading text is HTML-escaped before insertion.
func (c *Controller) buildTOC() {
	c.desktopEntries = c.populateList(c.cfg.DesktopTOCID, false)
	c.mobileEntries = c.populateList(c.cfg.MobileTOCID, true)
}

// rebuildTOC tears down the current entries and builds fresh ones, used when
// the level selector changes.
func (c *Controller) rebuildTOC() {
	for _, fn := range c.tocCleanups {
		fn()
	}
	c.tocCleanups = nil
	c.activeIndex = -1
	c.tocHeadings = c.filterTOCHeadings()
	c.buildTOC()
	c.updateActiveHeading()
}

func (c *Controller) populateList(listID string, mobile bool) []Element {
	if listID == "" {
		return nil
	}
	list := c.page.ElementByID(listID)
	if list == nil {
		return nil
	}
	list.Clear()

	entries := make([]Element, 0, len(c.tocHeadings))
	for i, h := range c.tocHeadings {
		markup := fmt.Sprintf(`<li class="toc-level-%d"><a href="#%s">%s</a></li>`,
			headingLevel(h), html.EscapeString(h.ID()), html.EscapeString(tocLabel(h)))
		entry := list.AppendHTML(markup)
		if entry == nil {
			continue
		}

		idx, heading := i, h
		remove := entry.OnClick(func(ev *Click) {
			ev.PreventDefault()
			c.setActive(idx)
			if mobile && c.modalOpen {
				// Let the modal finish collapsing before scrolling, or the
				// target position is measured against a shifting layout.
				c.closeModal()
				c.scheduleScroll(heading)
				return
			}
			c.scrollToElement(heading)
			c.page.ReplaceHash(heading.ID())
		})
		c.tocCleanups = append(c.tocCleanups, remove)
		entries = append(entries, entry)
	}
	return entries
}

// tocLabel collapses the heading's text whitespace for display.
func tocLabel(h Element) string {
	return strings.Join(strings.Fields(h.Text()), " ")
}

// wireScrollSpy attaches the frame-throttled scroll listener. Skipped when
// there is nothing to highlight.
func (c *Controller) wireScrollSpy() {
	if len(c.tocHeadings) == 0 {
		return
	}
	remove := c.scroller().OnScroll(func() {
		if c.framePending {
			return
		}
		c.framePending = true
		c.page.RequestFrame(func() {
			c.framePending = false
			c.updateActiveHeading()
		})
	})
	c.cleanups = append(c.cleanups, remove)
	c.updateActiveHeading()
}

// updateActiveHeading picks the heading nearest the top of the visible
// region: the last one within the tolerance window below the top, or the
// closest heading below the viewport top when none qualifies.
func (c *Controller) updateActiveHeading() {
	if len(c.tocHeadings) == 0 {
		return
	}
	top := c.scroller().ScrollTop()

	idx := -1
	for i, h := range c.tocHeadings {
		if h.Top()-top <= spyTolerance {
			idx = i
		} else {
			break
		}
	}
	if idx == -1 {
		for i, h := range c.tocHeadings {
			if h.Top() >= top {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		return
	}
	c.setActive(idx)
}

// setActive moves the single active class to the entry at idx in both lists
// and keeps the entry visible inside its sidebar.
func (c *Controller) setActive(idx int) {
	if idx == c.activeIndex {
		return
	}
	for _, entries := range [][]Element{c.desktopEntries, c.mobileEntries} {
		if c.activeIndex >= 0 && c.activeIndex < len(entries) {
			entries[c.activeIndex].RemoveClass(activeClass)
		}
	}
	c.activeIndex = idx

	lists := []string{c.cfg.DesktopTOCID, c.cfg.MobileTOCID}
	for li, entries := range [][]Element{c.desktopEntries, c.mobileEntries} {
		if idx < 0 || idx >= len(entries) {
			continue
		}
		entry := entries[idx]
		entry.AddClass(activeClass)
		if list := c.page.ElementByID(lists[li]); list != nil {
			revealEntry(list, entry)
		}
	}
}

// revealEntry scrolls the sidebar so the active entry stays visible.
func revealEntry(list, entry Element) {
	top := entry.Top()
	if top >= list.ScrollTop() && top+entry.Height() <= list.ScrollTop()+list.Height() {
		return
	}
	y := top - list.Height()/2
	if max := list.ScrollHeight() - list.Height(); y > max {
		y = max
	}
	if y < 0 {
		y = 0
	}
	list.ScrollTo(y)
}

// wireLevelSelect rebuilds the TOC when the heading-level selector changes.
func (c *Controller) wireLevelSelect() {
	if c.cfg.LevelSelectID == "" {
		return
	}
	sel := c.page.ElementByID(c.cfg.LevelSelectID)
	if sel == nil {
		return
	}
	c.cleanups = append(c.cleanups, sel.OnChange(func() {
		c.rebuildTOC()
	}))
}
