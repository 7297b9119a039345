// Package api exposes the template catalog, rendering, test sends, standalone previews
// and hosted preview sessions over HTTP, and provides a Client for the same endpoints.
//
// Routes:
//
//	GET  /healthz                       liveness and readiness
//	GET  /api/emails                    catalog entries
//	POST /api/render/{filename}         {"props": {...}} -> {"html", "text"}
//	POST /api/send/test                 {"to", "subject", "html"}, rate limited
//	GET  /api/events                    datastar stream of "toast" signals for a session
//	GET  /preview/{filename}            rendered page, query parameters become props
//	GET  /api/sessions/{id}             hosted session snapshot
//	POST /api/sessions/{id}/catalog     reload the session catalog
//	POST /api/sessions/{id}/select      {"filename"} -> default render
//	POST /api/sessions/{id}/render      {"props": {...}} -> render
//	POST /api/sessions/{id}/send        {"to", "subject"} -> {"outcome"}
//
// Errors are JSON {"error": message, "code": key}; see HTTPError.
package api
