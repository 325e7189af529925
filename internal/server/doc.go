// Package server exposes the content index over HTTP.
//
// Routes:
//   - GET /healthz
//   - GET /api/{category}: descriptors of one category
//   - GET /api/{category}/{slug}: one entry, ?hydrate=1 adds display markup
//   - GET /api/articles/{slug}/related
//   - GET /api/technologies, GET /api/pairings?first={name}
//   - GET /compare?first={a}&second={b}: redirects to the comparison page
//   - GET /sitemap.xml
//
// Host applications can mount Handler() on their own mux or call
// ListenAndServe directly.
package server
