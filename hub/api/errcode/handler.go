package errcode

import (
	"encoding/json"
	"net/http"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// ServeJSON serves the error in the hub's JSON envelope, deriving the status
// code from the error's descriptor. Errors without a code are served as
// UNKNOWN.
func ServeJSON(w http.ResponseWriter, err error) error {
	var (
		sc      int
		message string
	)

	switch e := err.(type) {
	case Error:
		sc = e.Code.Descriptor().HTTPStatusCode
		message = e.Message
	case ErrorCoder:
		d := e.ErrorCode().Descriptor()
		sc = d.HTTPStatusCode
		message = d.Message
	default:
		d := ErrorCodeUnknown.Descriptor()
		sc = d.HTTPStatusCode
		message = d.Message
	}

	if sc == 0 {
		sc = http.StatusInternalServerError
	}

	body, merr := json.Marshal(errorBody{Error: message})
	if merr != nil {
		return merr
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(sc)
	_, werr := w.Write(body)
	return werr
}
