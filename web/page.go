package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/lumen-language/Lumen-Kit/lexer"
	"github.com/lumen-language/Lumen-Kit/output"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; padding: 1.5rem; background: #1C1C1C; color: #D0D0D0; font-family: ui-monospace, monospace; }
h1 { font-size: 1rem; font-weight: normal; color: #8A8A8A; }
pre.lumen-kit { font-size: 14px; line-height: 1.4; }
ul.diagnostics { color: #FF5F87; padding-left: 1rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Diagnostics}}<ul class="diagnostics">
{{range .Diagnostics}}<li>{{.}}</li>
{{end}}</ul>
{{end}}{{.Code}}{{if .Watch}}<script>
new EventSource("/api/events").onmessage = function (e) {
  if (e.data === "reload") { location.reload(); }
};
</script>
{{end}}</body>
</html>
`))

type pageData struct {
	Title       string
	Code        template.HTML
	Diagnostics []string
	Watch       bool
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	var code bytes.Buffer
	err := output.NewHTML(&code, s.opts...).Render(r.Context(), s.source, lexer.NewSliceStream(s.tokens))
	data := pageData{
		Title: filepath.Base(s.file),
		// Rendered by output.HTML, which escapes all source text.
		Code:  template.HTML(code.String()), //nolint:gosec
		Watch: s.WatchEnabled,
	}
	for _, d := range s.diagnostics {
		data.Diagnostics = append(data.Diagnostics, d.Error())
	}
	s.mu.RUnlock()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render source: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		http.Error(w, fmt.Sprintf("Failed to render page: %v", err), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(buf.Bytes())
}
