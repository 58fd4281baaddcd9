package navigator_test

import (
	"testing"

	"github.com/docpress/docpress/internal/navigator"
	"github.com/docpress/docpress/internal/navigator/memdom"
)

const pageMarkup = `
<div id="content">
  <h1 id="intro" data-original-id="h.abc">Intro</h1>
  <p>
    <a id="frag" href="#h.abc">top</a>
    <a id="other" href="/docs/other">other doc</a>
    <a id="ext" href="https://elsewhere.example/x">elsewhere</a>
    <a id="mail" href="mailto:team@example.com">mail</a>
    <a id="same" href="https://docs.example.com/docs/current#h.abc">same page</a>
    <a id="empty" href="">empty</a>
    <a id="hashonly" href="#">hash</a>
  </p>
  <h2 id="details"><span id="nested-span">Details</span></h2>
  <h2>Untitled</h2>
</div>
<ul id="toc"></ul>
<ul id="toc-mobile"></ul>
<button id="toc-trigger">contents</button>
<div id="toc-modal"><button id="toc-close">close</button></div>
<div id="toc-overlay"></div>
<div id="slideover"><div id="slideover-content"></div><button id="slideover-close">close</button></div>
<div id="slideover-overlay"></div>
`

var testLoc = navigator.Location{Origin: "https://docs.example.com", Path: "/docs/current"}

func testConfig() navigator.Config {
	return navigator.Config{
		ContentID:          "content",
		DesktopTOCID:       "toc",
		MobileTOCID:        "toc-mobile",
		MobileTriggerID:    "toc-trigger",
		MobileModalID:      "toc-modal",
		MobileCloseID:      "toc-close",
		MobileOverlayID:    "toc-overlay",
		SlideoverID:        "slideover",
		SlideoverOverlayID: "slideover-overlay",
		SlideoverCloseID:   "slideover-close",
	}
}

// newTestController builds a page from pageMarkup, initializes a controller
// against it, and collects host callback invocations.
func newTestController(t *testing.T) (*memdom.Page, *navigator.Controller, *[]string) {
	t.Helper()
	page := memdom.New(pageMarkup, testLoc)
	page.ByID("intro").SetGeometry(0, 30)
	page.ByID("details").SetGeometry(500, 30)
	page.ViewportElem().SetGeometry(0, 800)
	page.ViewportElem().SetScrollMetrics(2000, true)

	var navigated []string
	ctrl := navigator.New(page, nil)
	if !ctrl.Initialize(func(path string) { navigated = append(navigated, path) }, testConfig()) {
		t.Fatal("Initialize returned false")
	}
	return page, ctrl, &navigated
}

func TestInitializeFailsWithoutContentContainer(t *testing.T) {
	page := memdom.New(`<p>no content here</p>`, testLoc)
	ctrl := navigator.New(page, nil)
	if ctrl.Initialize(nil, testConfig()) {
		t.Error("Initialize must fail when the content container is missing")
	}
}

func TestInitializeWithoutHeadings(t *testing.T) {
	page := memdom.New(`<div id="content"><a id="link" href="/docs/other">doc</a></div><ul id="toc"></ul>`, testLoc)
	var navigated []string
	ctrl := navigator.New(page, nil)
	ok := ctrl.Initialize(func(path string) { navigated = append(navigated, path) }, navigator.Config{
		ContentID:    "content",
		DesktopTOCID: "toc",
	})
	if !ok {
		t.Fatal("Initialize must succeed with zero headings")
	}
	if entries := page.ByID("toc").ByTag("li"); len(entries) != 0 {
		t.Errorf("TOC entries = %d, want 0", len(entries))
	}

	// Link interception is wired regardless of heading presence.
	if !page.ByID("link").Click(false) {
		t.Error("internal link click must be intercepted")
	}
	if len(navigated) != 1 || navigated[0] != "docs/other" {
		t.Errorf("navigated = %v, want [docs/other]", navigated)
	}
}

func TestHeadingFallbackIDs(t *testing.T) {
	page, _, _ := newTestController(t)
	// The third heading has no id in the markup; it gets heading-2.
	if page.ByID("heading-2") == nil {
		t.Error("heading without id should receive heading-2")
	}
}

func TestTOCPopulation(t *testing.T) {
	page, _, _ := newTestController(t)

	entries := page.ByID("toc").ByTag("li")
	if len(entries) != 3 {
		t.Fatalf("desktop TOC entries = %d, want 3", len(entries))
	}
	if a := entries[0].FirstByTag("a"); a == nil || a.Text() != "Intro" {
		t.Errorf("first entry = %v, want Intro link", a)
	}
	mobile := page.ByID("toc-mobile").ByTag("li")
	if len(mobile) != 3 {
		t.Errorf("mobile TOC entries = %d, want 3", len(mobile))
	}
}

func TestTOCEscapesHeadingText(t *testing.T) {
	page := memdom.New(
		`<div id="content"><h1>Alert &lt;script&gt;alert(1)&lt;/script&gt;</h1></div><ul id="toc"></ul>`,
		testLoc)
	ctrl := navigator.New(page, nil)
	if !ctrl.Initialize(nil, navigator.Config{ContentID: "content", DesktopTOCID: "toc"}) {
		t.Fatal("Initialize returned false")
	}

	toc := page.ByID("toc")
	if toc.FirstByTag("script") != nil {
		t.Error("heading text was injected as markup")
	}
	if got := toc.FirstByTag("a").Text(); got != "Alert <script>alert(1)</script>" {
		t.Errorf("entry text = %q", got)
	}
}

func TestFragmentClickScrollsAndReplacesHash(t *testing.T) {
	page, _, _ := newTestController(t)

	if !page.ByID("frag").Click(false) {
		t.Fatal("fragment click must prevent default")
	}
	// #h.abc resolves through the original-id mapping to #intro.
	hashes := page.ReplacedHashes()
	if len(hashes) != 1 || hashes[0] != "intro" {
		t.Errorf("replaced hashes = %v, want [intro]", hashes)
	}
}

func TestModifierClickBypass(t *testing.T) {
	page, _, navigated := newTestController(t)

	if page.ByID("frag").Click(true) {
		t.Error("ctrl/cmd fragment click must not prevent default")
	}
	if page.ByID("other").Click(true) {
		t.Error("ctrl/cmd internal click must not prevent default")
	}
	if len(*navigated) != 0 {
		t.Errorf("host callback invoked on modifier click: %v", *navigated)
	}
}

func TestEmptyAndBareHashClicks(t *testing.T) {
	page, _, navigated := newTestController(t)

	page.ByID("empty").Click(false)
	page.ByID("hashonly").Click(false)
	if len(*navigated) != 0 {
		t.Errorf("host callback invoked: %v", *navigated)
	}
	if n := len(page.ReplacedHashes()); n != 0 {
		t.Errorf("hash replaced %d times, want 0", n)
	}
}

func TestSamePathFragmentLink(t *testing.T) {
	page, _, navigated := newTestController(t)

	if !page.ByID("same").Click(false) {
		t.Fatal("same-path fragment click must prevent default")
	}
	hashes := page.ReplacedHashes()
	if len(hashes) != 1 || hashes[0] != "intro" {
		t.Errorf("replaced hashes = %v, want [intro]", hashes)
	}
	if len(*navigated) != 0 {
		t.Errorf("host callback invoked: %v", *navigated)
	}
}

func TestDifferentPathOpensSlideover(t *testing.T) {
	page, _, navigated := newTestController(t)

	if !page.ByID("other").Click(false) {
		t.Fatal("different-path click must prevent default")
	}
	if !page.ByID("slideover").HasClass("open") {
		t.Error("slideover should be open")
	}
	if !page.BodyLocked() {
		t.Error("body scroll should be locked")
	}
	if len(*navigated) != 1 || (*navigated)[0] != "docs/other" {
		t.Errorf("navigated = %v, want [docs/other]", *navigated)
	}
}

func TestExternalAndMailLinksNotIntercepted(t *testing.T) {
	page, _, navigated := newTestController(t)

	if page.ByID("ext").Click(false) {
		t.Error("other-origin link must not be intercepted")
	}
	if page.ByID("mail").Click(false) {
		t.Error("mailto link must not be intercepted")
	}
	if len(*navigated) != 0 {
		t.Errorf("host callback invoked: %v", *navigated)
	}
}

func TestScrollToHashResolution(t *testing.T) {
	page, ctrl, _ := newTestController(t)

	tests := []struct {
		fragment string
		wantHash string
	}{
		{"h.abc", "intro"},          // preserved original id
		{"heading=h.abc", "intro"},  // prefixed form
		{"nested-span", "details"},  // id nested inside a heading
		{"heading-2", "heading-2"},  // generated id maps to itself
	}
	for _, tt := range tests {
		before := len(page.ReplacedHashes())
		ctrl.ScrollToHash(tt.fragment)
		hashes := page.ReplacedHashes()
		if len(hashes) != before+1 || hashes[len(hashes)-1] != tt.wantHash {
			t.Errorf("ScrollToHash(%q): hashes = %v, want last %q", tt.fragment, hashes, tt.wantHash)
		}
	}

	// Unresolvable target: no scroll, no hash change, no panic.
	before := len(page.ReplacedHashes())
	ctrl.ScrollToHash("does-not-exist")
	if len(page.ReplacedHashes()) != before {
		t.Error("unresolvable fragment must not update the hash")
	}
}

func TestDisposeIsIdempotentAndReinitializable(t *testing.T) {
	page, ctrl, navigated := newTestController(t)

	ctrl.Dispose()
	ctrl.Dispose() // must not panic

	if page.ByID("frag").Click(false) {
		t.Error("listeners must be detached after Dispose")
	}
	if page.ByID("other").Click(false) {
		t.Error("listeners must be detached after Dispose")
	}
	if len(*navigated) != 0 {
		t.Errorf("host callback invoked after Dispose: %v", *navigated)
	}

	if !ctrl.Initialize(func(string) {}, testConfig()) {
		t.Error("Initialize after Dispose must succeed")
	}
	if !page.ByID("frag").Click(false) {
		t.Error("fresh initialization must intercept again")
	}
}

func TestReinitializeDoesNotDuplicateListeners(t *testing.T) {
	page, ctrl, navigated := newTestController(t)

	// Initialize again without an explicit Dispose.
	if !ctrl.Initialize(func(path string) { *navigated = append(*navigated, path) }, testConfig()) {
		t.Fatal("re-Initialize returned false")
	}
	page.ByID("other").Click(false)
	if len(*navigated) != 1 {
		t.Errorf("host callback invoked %d times, want 1", len(*navigated))
	}
}

func TestSlideoverContentListenerReplacement(t *testing.T) {
	page, ctrl, navigated := newTestController(t)

	page.ByID("slideover-content").AppendHTML(`<a id="inner" href="/docs/third">third</a>`)
	ctrl.InitializeSlideoverContent("slideover-content")
	ctrl.InitializeSlideoverContent("slideover-content")

	inner := page.ByID("inner")
	if inner.ClickCount() != 1 {
		t.Fatalf("click handlers on injected link = %d, want 1", inner.ClickCount())
	}
	inner.Click(false)
	if len(*navigated) != 1 || (*navigated)[0] != "docs/third" {
		t.Errorf("navigated = %v, want [docs/third]", *navigated)
	}
}
