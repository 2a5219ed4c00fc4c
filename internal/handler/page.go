// Package handler contains the HTTP handlers of the joke service.
//
// An HTTP handler is anything with ServeHTTP(ResponseWriter, *Request).
// Each handler parses the request, calls the service layer and writes the
// response. None of them hold business rules.
package handler

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/jokebox/internal/model"
)

// PageHandler renders the single joke page.
// Templates are parsed once at startup and reused for every request.
type PageHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewPageHandler parses templates/base.html and templates/index.html from fsys.
//
// base.html holds the page skeleton with a {{template "content" .}} slot and
// index.html fills it with {{define "content"}}. In production fsys is the
// embedded web.FS; tests can pass an fstest.MapFS.
func NewPageHandler(fsys fs.FS, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(fsys, "templates/base.html", "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// HandleIndex serves GET /.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":           "Joke Generator",
		"Subtitle":        "Discover hilarious jokes and enjoy beautiful aesthetics",
		"FallbackMessage": model.FallbackMessage,
		"FavoriteLabel":   model.FavoriteCategory,
		"Year":            time.Now().Year(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
