// Package docs serves the embedded API documentation.
package docs

import (
	"context"
	"errors"
	"net/http"
)

// Error constants.
var (
	ErrServe = errors.New("docs serve failed")
)

// Middleware wraps a handler with the caller's standard chain. The endpoint
// name feeds request metrics labels.
type Middleware func(next http.HandlerFunc, endpoint string) http.HandlerFunc

// Register attaches the documentation routes to mux, wrapping each with
// the supplied middleware chain. A nil wrap registers the handlers bare.
// Routes:
//
//	GET /docs          -> ReDoc HTML
//	GET /openapi.yaml  -> Embedded OpenAPI spec
func Register(_ context.Context, mux *http.ServeMux, wrap Middleware) {
	if mux == nil {
		panic("mux is nil")
	}
	if wrap == nil {
		wrap = func(next http.HandlerFunc, _ string) http.HandlerFunc { return next }
	}

	mux.HandleFunc("/docs", wrap(func(w http.ResponseWriter, r *http.Request) {
		if !requireGet(w, r) {
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	}, "docs"))

	mux.HandleFunc("/openapi.yaml", wrap(func(w http.ResponseWriter, r *http.Request) {
		if !requireGet(w, r) {
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	}, "openapi"))
}

// requireGet rejects any method other than GET with a JSON 405.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"code":"method_not_allowed","message":"Method Not Allowed"}` + "\n"))
		return false
	}
	return true
}

// Minimal HTML that renders the embedded spec with ReDoc.
const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Healthcare Prediction API – Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc spec-url="/openapi.yaml"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
  </body>
</html>`
