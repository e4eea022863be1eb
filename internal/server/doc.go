// Package server serves the rendered portfolio page over HTTP.
//
// A Site keeps the most recently rendered page behind an atomic pointer.
// Handlers only read that snapshot; Reload and Watch replace it as a whole,
// so a request never sees a half-rendered page. A failed reload keeps the
// previous page.
//
// Routes:
//
//	GET /               the rendered page
//	GET /assets/*       files from the assets directory
//	GET /api/portfolio  the rendered lists as JSON
//	GET /healthz        liveness and render status
package server
