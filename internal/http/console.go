package httpapp

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed static/console.html
var consoleFS embed.FS

//go:embed static/console.js
var consoleJS []byte

var consoleTemplate = template.Must(template.ParseFS(consoleFS, "static/console.html"))

type consolePage struct {
	Env string
}

// serveConsole renders the manual test console. It talks to the API from
// the browser with the session cookie.
func (s *Server) serveConsole(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := consoleTemplate.Execute(&buf, consolePage{Env: s.cfg.Env}); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func serveConsoleJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(consoleJS)
}
