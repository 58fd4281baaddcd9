package transform

import (
	"regexp"
	"strings"
)

var (
	cssRuleRE   = regexp.MustCompile(`([^{}]+)\{([^{}]*)\}`)
	listStyleRE = regexp.MustCompile(`(?i)(?:^|;)\s*list-style-type\s*:\s*([^;]+)`)
)

// filterListStyles keeps only the list numbering rules from the export's
// embedded stylesheets: selectors referencing a lst-kix_* class whose
// declaration block sets list-style-type. Margins, padding, and every
// unrelated class are discarded. Returns "" when nothing qualifies so the
// caller can omit the style block entirely.
func filterListStyles(styles []string) string {
	var b strings.Builder
	for _, css := range styles {
		for _, m := range cssRuleRE.FindAllStringSubmatch(css, -1) {
			selector := strings.TrimSpace(m[1])
			if !strings.Contains(selector, "lst-kix") {
				continue
			}
			decl := listStyleRE.FindStringSubmatch(m[2])
			if decl == nil {
				continue
			}
			b.WriteString(selector)
			b.WriteString("{list-style-type:")
			b.WriteString(strings.TrimSpace(decl[1]))
			b.WriteString("}")
		}
	}
	return b.String()
}
