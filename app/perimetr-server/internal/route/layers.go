package route

import (
	"encoding/json"
	"net/http"

	"github.com/hashworks/perimetr/internal/layer"
	"github.com/hashworks/perimetr/internal/log"
)

// handleGetLayers responds with the full set of layer documents found
// under cfg.LayerPath, unparsable files silently skipped (and logged).
func handleGetLayers(w http.ResponseWriter, r *http.Request, cfg Config) {
	layers, err := cfg.Orchestrator.ListLayers()
	if err != nil {
		log.Log().Error("route", "msg", "failed to list layers", "err", err.Error())
		http.Error(w, "failed to list layers", http.StatusInternalServerError)
		return
	}
	if layers == nil {
		layers = []layer.Layer{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(layers); err != nil {
		log.Log().Error("route", "msg", "failed to encode layers response", "err", err.Error())
	}
}
