package navigator_test

import (
	"testing"

	"github.com/docpress/docpress/internal/navigator"
	"github.com/docpress/docpress/internal/navigator/memdom"
)

func TestScrollSpySelectsNearestHeading(t *testing.T) {
	page, _, _ := newTestController(t)
	entries := page.ByID("toc").ByTag("li")

	// Initial pass runs during Initialize: the first heading is active.
	if !entries[0].HasClass("active") {
		t.Fatal("first entry should start active")
	}

	// Scroll so the second heading (top 500) sits within the tolerance
	// window below the viewport top.
	page.ViewportElem().Scroll(450)
	page.RunFrames()

	if entries[0].HasClass("active") {
		t.Error("first entry should no longer be active")
	}
	if !entries[1].HasClass("active") {
		t.Error("second entry should be active at scrollTop 450")
	}

	// Exactly one active entry at any time.
	active := 0
	for _, e := range entries {
		if e.HasClass("active") {
			active++
		}
	}
	if active != 1 {
		t.Errorf("active entries = %d, want 1", active)
	}
}

func TestScrollSpyThrottlesToOneFrame(t *testing.T) {
	page, _, _ := newTestController(t)

	// Many scroll events before the frame runs must queue one callback.
	page.ViewportElem().Scroll(100)
	page.ViewportElem().Scroll(200)
	page.ViewportElem().Scroll(450)
	page.RunFrames()

	entries := page.ByID("toc").ByTag("li")
	if !entries[1].HasClass("active") {
		t.Error("second entry should be active after coalesced update")
	}
}

func TestScrollSpyFallsBackToClosestBelow(t *testing.T) {
	page := memdom.New(
		`<div id="content"><h1 id="a">A</h1><h2 id="b">B</h2></div><ul id="toc"></ul>`,
		testLoc)
	page.ByID("a").SetGeometry(400, 30)
	page.ByID("b").SetGeometry(900, 30)
	page.ViewportElem().SetScrollMetrics(2000, true)

	ctrl := navigator.New(page, nil)
	if !ctrl.Initialize(nil, navigator.Config{ContentID: "content", DesktopTOCID: "toc"}) {
		t.Fatal("Initialize returned false")
	}

	// No heading within the tolerance window (first is 400px below the
	// top): the closest heading below is highlighted.
	entries := page.ByID("toc").ByTag("li")
	if !entries[0].HasClass("active") {
		t.Error("first heading below the viewport top should be active")
	}
}

func TestTOCClickMarksActiveImmediately(t *testing.T) {
	page, _, _ := newTestController(t)
	entries := page.ByID("toc").ByTag("li")

	if !entries[1].Click(false) {
		t.Fatal("TOC entry click must prevent default")
	}
	if !entries[1].HasClass("active") {
		t.Error("clicked entry should be active without waiting for scroll")
	}
	if entries[0].HasClass("active") {
		t.Error("previous entry should lose the active class")
	}

	// The content scrolls to the heading with the configured margin.
	if got := page.ViewportElem().ScrollTop(); got != 500-16 {
		t.Errorf("viewport scrollTop = %v, want %v", got, 500-16)
	}
	hashes := page.ReplacedHashes()
	if len(hashes) == 0 || hashes[len(hashes)-1] != "details" {
		t.Errorf("replaced hashes = %v, want last %q", hashes, "details")
	}
}

func TestLevelSelectRebuildsTOC(t *testing.T) {
	page := memdom.New(
		`<div id="content"><h1 id="a">A</h1><h2 id="b">B</h2><h3 id="c">C</h3></div>`+
			`<ul id="toc"></ul><select id="lvl" value="3"></select>`,
		testLoc)
	ctrl := navigator.New(page, nil)
	ok := ctrl.Initialize(nil, navigator.Config{
		ContentID:     "content",
		DesktopTOCID:  "toc",
		LevelSelectID: "lvl",
	})
	if !ok {
		t.Fatal("Initialize returned false")
	}

	if n := len(page.ByID("toc").ByTag("li")); n != 3 {
		t.Fatalf("entries at depth 3 = %d, want 3", n)
	}

	page.ByID("lvl").Change("1")
	if n := len(page.ByID("toc").ByTag("li")); n != 1 {
		t.Errorf("entries at depth 1 = %d, want 1", n)
	}
}

func TestMobileModalLifecycle(t *testing.T) {
	page, _, _ := newTestController(t)

	page.ByID("toc-trigger").Click(false)
	if !page.ByID("toc-modal").HasClass("open") {
		t.Fatal("modal should be open")
	}
	if !page.BodyLocked() {
		t.Error("body scroll should be locked while the modal is open")
	}

	page.ByID("toc-close").Click(false)
	if page.ByID("toc-modal").HasClass("open") {
		t.Error("modal should be closed")
	}
	if page.BodyLocked() {
		t.Error("body scroll should be unlocked after close")
	}

	// Overlay click closes too.
	page.ByID("toc-trigger").Click(false)
	page.ByID("toc-overlay").Click(false)
	if page.ByID("toc-modal").HasClass("open") {
		t.Error("overlay click should close the modal")
	}

	// Escape while open.
	page.ByID("toc-trigger").Click(false)
	page.Keydown("Escape")
	if page.ByID("toc-modal").HasClass("open") {
		t.Error("Escape should close the modal")
	}
}

func TestMobileTOCClickDefersScrollUntilModalSettles(t *testing.T) {
	page, _, _ := newTestController(t)

	page.ByID("toc-trigger").Click(false)
	mobile := page.ByID("toc-mobile").ByTag("li")
	mobile[1].Click(false)

	if page.ByID("toc-modal").HasClass("open") {
		t.Error("modal should close on entry click")
	}
	if got := page.ViewportElem().ScrollTop(); got != 0 {
		t.Errorf("scroll ran before the modal settled: scrollTop = %v", got)
	}
	if page.PendingTimers() != 1 {
		t.Fatalf("pending timers = %d, want 1", page.PendingTimers())
	}

	page.RunTimers()
	if got := page.ViewportElem().ScrollTop(); got != 500-16 {
		t.Errorf("viewport scrollTop = %v, want %v", got, 500-16)
	}
}

func TestSlideoverEscapeAndCloseButton(t *testing.T) {
	page, ctrl, _ := newTestController(t)

	ctrl.OpenSlideover()
	if !page.ByID("slideover").HasClass("open") {
		t.Fatal("slideover should be open")
	}
	page.Keydown("Escape")
	if page.ByID("slideover").HasClass("open") {
		t.Error("Escape should close the slideover")
	}
	if page.BodyLocked() {
		t.Error("body scroll should be unlocked")
	}

	ctrl.OpenSlideover()
	page.ByID("slideover-close").Click(false)
	if page.ByID("slideover").HasClass("open") {
		t.Error("close button should close the slideover")
	}

	// Closing when already closed is a no-op.
	ctrl.CloseSlideover()
}
