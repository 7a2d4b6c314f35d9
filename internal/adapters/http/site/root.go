// Package site serves the embedded front-end.
package site

import (
	"context"
	"net/http"
)

// IndexPath is where GET / sends browsers.
const IndexPath = "/static/index.html"

// Register attaches the front-end routes to mux.
//
//	GET /          -> 307 to /static/index.html
//	GET /static/*  -> embedded assets
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("GET /{$}", NewRootHandler())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// RootHandler redirects the bare root to the front-end.
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// ServeHTTP handles GET / requests.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}
