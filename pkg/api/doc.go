// Package api exposes the unit catalog and the harness over HTTP.
//
// Routes:
//
//	GET  /health              liveness plus catalog readiness
//	GET  /units[?kind=]       catalog listing
//	POST /units/{name}/run    run a catalog unit; the body is the Input Context
//	POST /eval                load and run submitted source (opt-in)
//
// Responses use the {"data": ..., "error": {"code", "message"}} envelope.
// Every request carries a dialog id (X-Dialog-ID) and a negotiated locale;
// both are copied into the Input Context when the caller did not set them.
package api
