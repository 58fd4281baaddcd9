package transform

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Overview", "overview"},
		{"spaces", "Quick Start Guide", "quick-start-guide"},
		{"section numbers keep periods", "10.3.1 Report Rules", "10.3.1-report-rules"},
		{"punctuation collapses", "Hello,  World!", "hello-world"},
		{"leading and trailing trimmed", "  --Intro--  ", "intro"},
		{"unicode letters kept", "Überblick", "überblick"},
		{"digits kept", "Step 2 of 3", "step-2-of-3"},
		{"only separators", "!!! ???", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slugify(tt.in); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripHeadingPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"heading=h.abc", "h.abc"},
		{"HEADING=h.abc", "h.abc"},
		{"Heading=h.abc", "h.abc"},
		{"h.abc", "h.abc"},
		{"heading", "heading"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripHeadingPrefix(tt.in); got != tt.want {
			t.Errorf("stripHeadingPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterListStyles(t *testing.T) {
	tests := []struct {
		name   string
		styles []string
		want   string
	}{
		{
			name:   "keeps numbering rules only",
			styles: []string{`ul.lst-kix_a-0{list-style-type:disc;margin:0}.c1{color:red}`},
			want:   `ul.lst-kix_a-0{list-style-type:disc}`,
		},
		{
			name:   "nothing matches",
			styles: []string{`.c1{color:red}`, `body{margin:0}`},
			want:   "",
		},
		{
			name:   "lst-kix selector without list-style-type is dropped",
			styles: []string{`.lst-kix_a-0>li:before{content:"- "}`},
			want:   "",
		},
		{
			name:   "multiple style blocks",
			styles: []string{`ol.lst-kix_a-1{list-style-type:decimal}`, `ul.lst-kix_b-0{list-style-type:circle}`},
			want:   `ol.lst-kix_a-1{list-style-type:decimal}ul.lst-kix_b-0{list-style-type:circle}`,
		},
		{
			name:   "property name matching is case-insensitive",
			styles: []string{`ul.lst-kix_a-0{LIST-STYLE-TYPE: square }`},
			want:   `ul.lst-kix_a-0{list-style-type:square}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filterListStyles(tt.styles); got != tt.want {
				t.Errorf("filterListStyles = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
		ok   bool
	}{
		{
			name: "google redirect",
			href: "https://www.google.com/url?q=https%3A%2F%2Fdocs.google.com%2Fdocument%2Fd%2Fabc%2Fedit&sa=D",
			want: "https://docs.google.com/document/d/abc/edit",
			ok:   true,
		},
		{
			name: "bare google host",
			href: "https://google.com/url?q=https%3A%2F%2Fexample.com",
			want: "https://example.com",
			ok:   true,
		},
		{
			name: "missing q parameter",
			href: "https://www.google.com/url?sa=D",
			ok:   false,
		},
		{
			name: "other host",
			href: "https://example.com/url?q=x",
			ok:   false,
		},
		{
			name: "other path",
			href: "https://www.google.com/search?q=x",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := unwrapRedirect(tt.href)
			if ok != tt.ok || got != tt.want {
				t.Errorf("unwrapRedirect(%q) = %q, %v; want %q, %v", tt.href, got, ok, tt.want, tt.ok)
			}
		})
	}
}
