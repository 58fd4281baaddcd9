package server

import (
	"bytes"
	"html/template"
	"net/http"
	"os"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/docpress/docpress/internal/registry"
)

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>docpress</title>
</head>
<body>
<main>
{{.Intro}}
<h2>Documents</h2>
<ul>
{{range .Documents}}<li><a href="{{.Route}}">{{.Name}}</a></li>
{{end}}</ul>
</main>
</body>
</html>
`

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

type indexData struct {
	Intro     template.HTML
	Documents []registry.Document
}

// handleIndex renders the index page: the configured markdown intro file
// (when present) followed by the list of registered documents.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{Documents: s.reg.Documents()}

	if s.cfg.IndexFile != "" {
		content, err := os.ReadFile(s.cfg.IndexFile)
		if err == nil {
			md := goldmark.New(
				goldmark.WithExtensions(
					extension.GFM,
					highlighting.NewHighlighting(
						highlighting.WithStyle("github"),
					),
				),
				goldmark.WithParserOptions(
					parser.WithAutoHeadingID(),
				),
				goldmark.WithRendererOptions(
					ghtml.WithUnsafe(),
				),
			)
			var buf bytes.Buffer
			if err := md.Convert(content, &buf); err == nil {
				data.Intro = template.HTML(buf.String())
			} else {
				s.log.Error("rendering index markdown failed", "file", s.cfg.IndexFile, "error", err)
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.log.Error("rendering index failed", "error", err)
	}
}
