package handlers

import (
	"html/template"
	"net/http"

	"threadb/pkg/logger"
	"threadb/pkg/uploads"
)

var (
	tmpl     *template.Template
	imgStore *uploads.Store
	pageSize int
)

// Init wires the handler package to its collaborators. Called once from
// api.Handler before any route is served.
func Init(t *template.Template, up *uploads.Store, size int) {
	tmpl = t
	imgStore = up
	pageSize = size
	if pageSize <= 0 {
		pageSize = 10
	}
}

func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("template_render_failed", "template", name, "error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}
