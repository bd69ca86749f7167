package handler

import (
	"embed"
	"net/http"
)

//go:embed all:static
var staticFS embed.FS

// HomeHandler serves the static pages
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Index serves the public landing page
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.serve(w, "static/index.html")
}

// Home serves the logged-in home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.serve(w, "static/home.html")
}

func (h *HomeHandler) serve(w http.ResponseWriter, name string) {
	page, err := staticFS.ReadFile(name)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
