package handlers

import (
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/hub/storage"
)

// sha256Dispatcher builds the digest handler for a repository kind. Only
// GET is registered; HEAD earns a 405 from the method handler.
func sha256Dispatcher(kind localhub.RepoKind) dispatchFunc {
	return func(ctx *Context, r *http.Request) http.Handler {
		sha256Handler := &sha256Handler{
			Context: ctx,
			Kind:    kind,
		}

		return handlers.MethodHandler{
			http.MethodGet: http.HandlerFunc(sha256Handler.GetSHA256),
		}
	}
}

type sha256Handler struct {
	*Context

	Kind localhub.RepoKind
}

// sha256Response is the digest document.
type sha256Response struct {
	SHA256 string `json:"sha256"`
}

// GetSHA256 digests the file on demand. The result comes from the hasher
// cache when the file is unchanged.
func (sh *sha256Handler) GetSHA256(w http.ResponseWriter, r *http.Request) {
	base, err := sh.store.RepoPath(sh.Kind, getOrg(sh), getName(sh))
	if err != nil {
		serveError(sh.Context, w, err)
		return
	}

	rel, err := storage.NormalizeRel(getFilename(sh))
	if err != nil {
		serveError(sh.Context, w, err)
		return
	}

	path, _, err := sh.store.ResolveFile(base, rel)
	if err != nil {
		serveError(sh.Context, w, err)
		return
	}

	d, err := sh.store.SHA256(path)
	if err != nil {
		serveError(sh.Context, w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, sha256Response{SHA256: d.Encoded()}); err != nil {
		serveError(sh.Context, w, err)
	}
}
