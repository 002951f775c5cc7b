// Package api wires the gateway's HTTP surface: the signed Slack
// events webhook and a liveness endpoint. The webhook carries its own
// authentication (the request signature); the health endpoint is
// deliberately open.
package api

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	Events http.Handler
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
