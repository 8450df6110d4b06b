package handlers

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// treeDispatcher builds the handler for the flat tree listing.
func treeDispatcher(ctx *Context, r *http.Request) http.Handler {
	treeHandler := &treeHandler{Context: ctx}

	return handlers.MethodHandler{
		http.MethodGet: http.HandlerFunc(treeHandler.GetTree),
	}
}

type treeHandler struct {
	*Context
}

// GetTree lists a repository's entries. recursive=1 includes descendants,
// expand=1 fills identity from the sidecar.
func (th *treeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	base, err := th.store.RepoPath(getKind(th), getOrg(th), getName(th))
	if err != nil {
		serveError(th.Context, w, err)
		return
	}

	entries, err := th.store.Tree(base, boolParam(r, "recursive"), boolParam(r, "expand"))
	if err != nil {
		serveError(th.Context, w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, entries); err != nil {
		serveError(th.Context, w, err)
	}
}
