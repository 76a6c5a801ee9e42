package server

import (
	"net/http"
	"strings"

	"github.com/vango-dev/micro/pkg/markup"
)

// RootID is the id of the shell element the browser renders into.
const RootID = "micro-root"

// shell renders the page served at /. It carries no application markup.
func (s *Server) shell() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	b.WriteString("<title>" + markup.Escape(s.config.Title) + "</title>\n")
	if s.config.Head != "" {
		b.WriteString(s.config.Head)
		b.WriteString("\n")
	}
	b.WriteString(`<script src="/client.js" defer></script>` + "\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(`<div id="` + RootID + `"></div>` + "\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	if id, fresh := clientID(r); fresh {
		http.SetCookie(w, clientCookie(id))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write([]byte(s.shell()))
}
