package api

import (
	"net/http"
)

func NewRouter(handler *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/v1/slack/events", handler.Events)
	mux.HandleFunc("/healthz", handler.Health)

	return mux
}
