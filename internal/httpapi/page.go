package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/a-h/templ"
)

//go:generate templ generate

// pageTitle names the browser tab after the watched file.
func pageTitle(watchFile string) string {
	if watchFile == "" {
		return "logwatch"
	}
	return "logwatch: " + filepath.Base(watchFile)
}

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}
