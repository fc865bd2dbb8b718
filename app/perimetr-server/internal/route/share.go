package route

import (
	"errors"
	"io"
	"net/http"

	"github.com/hashworks/perimetr/internal/layer"
	"github.com/hashworks/perimetr/internal/log"
	"github.com/hashworks/perimetr/internal/orchestrator"
)

// handlePostShare accepts a base64-encoded share as the entire request
// body and submits it to the orchestrator. Response codes follow the
// original service: 200 on acceptance (with or without the threshold being
// reached), 400 on a malformed or unverifiable share, 404 for an unknown
// layer uuid, 500 on storage failure.
func handlePostShare(w http.ResponseWriter, r *http.Request, cfg Config) {
	uuid := r.PathValue("uuid")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	outcome, err := cfg.Orchestrator.AcceptShare(r.Context(), uuid, string(body))
	switch {
	case errors.Is(err, layer.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	case errors.Is(err, orchestrator.ErrInvalidShare):
		http.Error(w, "Invalid share", http.StatusBadRequest)
		return
	case errors.Is(err, orchestrator.ErrStorageFailure):
		http.Error(w, "Failed to store share", http.StatusInternalServerError)
		return
	case err != nil:
		log.Log().Error("route", "msg", "failed to accept share", "uuid", uuid, "err", err.Error())
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if outcome == orchestrator.ThresholdReached {
		w.Write([]byte("Share accepted, threshold reached. Decrypting."))
		return
	}
	w.Write([]byte("Share accepted, threshold hasn't been reached yet."))
}
