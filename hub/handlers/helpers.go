package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/localhub/localhub"
	"github.com/localhub/localhub/hub/api/errcode"
	"github.com/localhub/localhub/internal/dcontext"
)

// writeJSON marshals v and serves it with the hub's JSON content type.
// Bodies are marshaled up front so identical answers stay byte-identical and
// carry a Content-Length.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// serveError maps a storage or domain error onto the wire taxonomy and
// serves it. Server-side failures are logged before they leave the process.
func serveError(ctx *Context, w http.ResponseWriter, err error) {
	var code errcode.ErrorCode

	var scErr *localhub.SidecarError
	switch {
	case errors.Is(err, localhub.ErrEntryNotFound):
		code = errcode.ErrorCodeEntryNotFound
	case errors.Is(err, localhub.ErrPathEscape):
		code = errcode.ErrorCodeInvalidPath
	case errors.Is(err, localhub.ErrETagUnavailable):
		code = errcode.ErrorCodeETagUnavailable
	case errors.As(err, &scErr):
		code = errcode.ErrorCodeSidecarMalformed
	default:
		if coder, ok := err.(errcode.ErrorCoder); ok {
			code = coder.ErrorCode()
		} else {
			code = errcode.ErrorCodeUnknown
		}
	}

	if code.Descriptor().HTTPStatusCode >= http.StatusInternalServerError {
		dcontext.GetLogger(ctx).WithError(err).Error("request failed")
	}

	if serr := errcode.ServeJSON(w, code); serr != nil {
		dcontext.GetLogger(ctx).Errorf("error serving error json: %v (from %v)", serr, err)
	}
}

// boolParam interprets a query flag. Absent, "0" and "false" are false;
// anything else ("1", "true") is true.
func boolParam(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v != "" && v != "0" && v != "false"
}
