package handlers

import (
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/localhub/localhub/version"
)

// baseDispatcher builds the probe endpoint handler.
func baseDispatcher(ctx *Context, r *http.Request) http.Handler {
	return handlers.MethodHandler{
		http.MethodGet: http.HandlerFunc(apiBase),
	}
}

// apiBase answers the root probe with a trivial body so clients can confirm
// they are talking to a hub.
func apiBase(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Localhub-Version", version.Version())
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
