package navigator

import "time"

// modalScrollDelay lets the mobile TOC modal finish its close animation
// before the scroll runs against the settled layout.
const modalScrollDelay = 250 * time.Millisecond

// wirePanels attaches the mobile TOC modal and slideover controls, plus the
// shared Escape handler. Missing elements disable only their own feature.
func (c *Controller) wirePanels() {
	c.wireOpenClose(c.cfg.MobileTriggerID, c.openModal, []string{c.cfg.MobileCloseID, c.cfg.MobileOverlayID}, c.closeModal)
	c.wireOpenClose("", nil, []string{c.cfg.SlideoverCloseID, c.cfg.SlideoverOverlayID}, c.CloseSlideover)

	c.cleanups = append(c.cleanups, c.page.OnKeyDown(func(key string) {
		if key != "Escape" {
			return
		}
		if c.modalOpen {
			c.closeModal()
		}
		if c.slideoverOpen {
			c.CloseSlideover()
		}
	}))
}

func (c *Controller) wireOpenClose(triggerID string, open func(), closeIDs []string, closeFn func()) {
	if triggerID != "" && open != nil {
		if trigger := c.page.ElementByID(triggerID); trigger != nil {
			c.cleanups = append(c.cleanups, trigger.OnClick(func(ev *Click) {
				ev.PreventDefault()
				open()
			}))
		}
	}
	for _, id := range closeIDs {
		if id == "" {
			continue
		}
		if el := c.page.ElementByID(id); el != nil {
			c.cleanups = append(c.cleanups, el.OnClick(func(ev *Click) {
				ev.PreventDefault()
				closeFn()
			}))
		}
	}
}

func (c *Controller) openModal() {
	if c.modalOpen {
		return
	}
	modal := c.page.ElementByID(c.cfg.MobileModalID)
	if modal == nil {
		return
	}
	modal.AddClass(openClass)
	c.page.LockBodyScroll(true)
	c.modalOpen = true
}

func (c *Controller) closeModal() {
	if !c.modalOpen {
		return
	}
	if modal := c.page.ElementByID(c.cfg.MobileModalID); modal != nil {
		modal.RemoveClass(openClass)
	}
	if !c.slideoverOpen {
		c.page.LockBodyScroll(false)
	}
	c.modalOpen = false
}

// OpenSlideover shows the side panel used to display another document
// without a full page navigation. No-op when no slideover is configured.
func (c *Controller) OpenSlideover() {
	if c.slideoverOpen || c.cfg.SlideoverID == "" {
		return
	}
	panel := c.page.ElementByID(c.cfg.SlideoverID)
	if panel == nil {
		return
	}
	panel.AddClass(openClass)
	if overlay := c.page.ElementByID(c.cfg.SlideoverOverlayID); overlay != nil {
		overlay.AddClass(openClass)
	}
	c.page.LockBodyScroll(true)
	c.slideoverOpen = true
}

// CloseSlideover hides the side panel. Safe to call when already closed.
func (c *Controller) CloseSlideover() {
	if !c.slideoverOpen {
		return
	}
	if panel := c.page.ElementByID(c.cfg.SlideoverID); panel != nil {
		panel.RemoveClass(openClass)
	}
	if overlay := c.page.ElementByID(c.cfg.SlideoverOverlayID); overlay != nil {
		overlay.RemoveClass(openClass)
	}
	if !c.modalOpen {
		c.page.LockBodyScroll(false)
	}
	c.slideoverOpen = false
}

// scheduleScroll performs a deferred scroll to target once the modal's close
// animation has settled. A newer request supersedes a pending one.
func (c *Controller) scheduleScroll(target Element) {
	if c.cancelPending != nil {
		c.cancelPending()
	}
	c.cancelPending = c.page.After(modalScrollDelay, func() {
		c.cancelPending = nil
		c.scrollToElement(target)
		c.page.ReplaceHash(target.ID())
	})
}
