package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/localhub/localhub/hub/api/errcode"
	"github.com/localhub/localhub/hub/storage"
)

// pathsInfoDispatcher builds the handler for the paths-info query.
func pathsInfoDispatcher(ctx *Context, r *http.Request) http.Handler {
	pathsInfoHandler := &pathsInfoHandler{Context: ctx}

	return handlers.MethodHandler{
		http.MethodPost: http.HandlerFunc(pathsInfoHandler.PostPathsInfo),
	}
}

type pathsInfoHandler struct {
	*Context
}

// pathsInfoBody is the request body. A pointer distinguishes an absent
// paths field (meaning the whole repository) from an explicit empty list.
type pathsInfoBody struct {
	Paths  *[]string `json:"paths"`
	Expand bool      `json:"expand"`
}

// PostPathsInfo answers the per-path metadata query.
func (ph *pathsInfoHandler) PostPathsInfo(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		serveError(ph.Context, w, err)
		return
	}

	var body pathsInfoBody
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 {
		if trimmed[0] != '{' {
			serveError(ph.Context, w, errcode.ErrorCodeBadRequest)
			return
		}
		if err := json.Unmarshal(trimmed, &body); err != nil {
			serveError(ph.Context, w, errcode.ErrorCodeBadRequest)
			return
		}
	}

	req := storage.PathsInfoRequest{Expand: body.Expand}
	if body.Paths != nil {
		req.Paths = *body.Paths
	}

	base, err := ph.store.RepoPath(getKind(ph), getOrg(ph), getName(ph))
	if err != nil {
		serveError(ph.Context, w, err)
		return
	}

	results, err := ph.store.PathsInfo(base, req)
	if err != nil {
		serveError(ph.Context, w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, results); err != nil {
		serveError(ph.Context, w, err)
	}
}
