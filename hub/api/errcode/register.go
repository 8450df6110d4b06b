package errcode

import (
	"fmt"
	"net/http"
	"sync"
)

var (
	errorCodeToDescriptors = map[ErrorCode]ErrorDescriptor{}
	idToDescriptors        = map[string]ErrorDescriptor{}

	nextCode     = 1000
	registerLock sync.Mutex
)

var (
	// ErrorCodeUnknown is a generic error used when no situation-specific
	// classification applies.
	ErrorCodeUnknown = register(ErrorDescriptor{
		Value:          "UNKNOWN",
		Message:        "Internal error",
		HTTPStatusCode: http.StatusInternalServerError,
	})

	// ErrorCodeEntryNotFound is returned when a repository or file does
	// not exist under the configured root.
	ErrorCodeEntryNotFound = register(ErrorDescriptor{
		Value:          "ENTRY_NOT_FOUND",
		Message:        "Entry not found",
		HTTPStatusCode: http.StatusNotFound,
	})

	// ErrorCodeInvalidPath is returned on a traversal attempt. Kept
	// distinct from ENTRY_NOT_FOUND so the policy stays visible.
	ErrorCodeInvalidPath = register(ErrorDescriptor{
		Value:          "INVALID_PATH",
		Message:        "Invalid path",
		HTTPStatusCode: http.StatusBadRequest,
	})

	// ErrorCodeBadRequest is returned for a malformed or non-object
	// request body.
	ErrorCodeBadRequest = register(ErrorDescriptor{
		Value:          "BAD_REQUEST",
		Message:        "Invalid request body",
		HTTPStatusCode: http.StatusBadRequest,
	})

	// ErrorCodeETagUnavailable is returned when the sidecar supplies no
	// identity for a resolve target. The server never synthesizes one.
	ErrorCodeETagUnavailable = register(ErrorDescriptor{
		Value:          "ETAG_UNAVAILABLE",
		Message:        "ETag not available",
		HTTPStatusCode: http.StatusInternalServerError,
	})

	// ErrorCodeSidecarMalformed is returned when a sidecar document
	// exists but does not parse.
	ErrorCodeSidecarMalformed = register(ErrorDescriptor{
		Value:          "SIDECAR_MALFORMED",
		Message:        "Sidecar parse failed",
		HTTPStatusCode: http.StatusInternalServerError,
	})
)

// register assigns the next available code to the descriptor and indexes it.
func register(descriptor ErrorDescriptor) ErrorCode {
	registerLock.Lock()
	defer registerLock.Unlock()

	descriptor.Code = ErrorCode(nextCode)

	if _, ok := idToDescriptors[descriptor.Value]; ok {
		panic(fmt.Sprintf("ErrorValue %q is already registered", descriptor.Value))
	}

	errorCodeToDescriptors[descriptor.Code] = descriptor
	idToDescriptors[descriptor.Value] = descriptor

	nextCode++
	return descriptor.Code
}
