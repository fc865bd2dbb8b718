// Package route wires the perimetr-server HTTP handlers together: an
// audit-logged mux for the two API endpoints, plus static file serving
// for layer data and the bundled web UI.
package route

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/hashworks/perimetr/internal/log"
	"github.com/hashworks/perimetr/internal/orchestrator"
)

// Config bundles everything a route handler needs from the running
// server: the orchestrator wiring the layer and share stores together,
// and the directory layer documents and data files are served from.
type Config struct {
	Orchestrator *orchestrator.Orchestrator
	LayerPath    string
}

// withAudit wraps h so every request is logged on entry and exit, mirroring
// the audit-trail discipline used for share acceptance and reconstruction.
func withAudit(action log.AuditAction, h func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := log.AuditEntry{Timestamp: start, Action: action, Resource: r.URL.Path, State: log.AuditCreated}
		log.Audit(entry)

		h(w, r)

		entry.State = log.AuditSuccess
		entry.Duration = time.Since(start)
		log.Audit(entry)
	}
}

// NewMux builds the perimetr-server HTTP mux: GET /layers, POST
// /layer/{uuid}/share, static /data/* serving cfg.LayerPath, and static /
// serving the bundled web UI from ./static. CORS is wide open, matching the
// original service's deliberately permissive cross-origin posture -- this
// endpoint is meant to be called from arbitrary browser-hosted dashboards.
func NewMux(cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /layers", withAudit("layers-list", func(w http.ResponseWriter, r *http.Request) {
		handleGetLayers(w, r, cfg)
	}))
	mux.Handle("POST /layer/{uuid}/share", withAudit(log.AuditShareAccepted, func(w http.ResponseWriter, r *http.Request) {
		handlePostShare(w, r, cfg)
	}))
	mux.Handle("/data/", http.StripPrefix("/data/", http.FileServer(http.Dir(cfg.LayerPath))))
	mux.Handle("/", http.FileServer(http.Dir("static")))

	return cors.AllowAll().Handler(mux)
}
