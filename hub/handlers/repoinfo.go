package handlers

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"

	"github.com/localhub/localhub"
)

// repoInfoDispatcher builds the handler for the canonical repository
// document, with or without a pinned revision.
func repoInfoDispatcher(ctx *Context, r *http.Request) http.Handler {
	repoInfoHandler := &repoInfoHandler{Context: ctx}

	return handlers.MethodHandler{
		http.MethodGet: http.HandlerFunc(repoInfoHandler.GetRepoInfo),
	}
}

type repoInfoHandler struct {
	*Context
}

// GetRepoInfo composes the repository document from the siblings
// enumeration. The revision is echoed into sha verbatim.
func (rh *repoInfoHandler) GetRepoInfo(w http.ResponseWriter, r *http.Request) {
	kind := getKind(rh)

	base, err := rh.store.RepoPath(kind, getOrg(rh), getName(rh))
	if err != nil {
		serveError(rh.Context, w, err)
		return
	}

	listing, err := rh.store.Siblings(base)
	if err != nil {
		serveError(rh.Context, w, err)
		return
	}

	lastModified := rh.started
	if fi, err := os.Stat(base); err == nil {
		lastModified = fi.ModTime()
	}

	info := localhub.RepoInfo{
		ID:           repoID(rh),
		SHA:          getRevision(rh),
		LastModified: lastModified.UTC(),
		Siblings:     listing.Siblings,
		UsedStorage:  listing.UsedStorage,
	}
	if kind == localhub.RepoKindDataset {
		info.DatasetID = info.ID
	} else {
		info.ModelID = info.ID
	}

	if err := writeJSON(w, http.StatusOK, info); err != nil {
		serveError(rh.Context, w, err)
	}
}
