// Package errcode maps the hub's error taxonomy onto HTTP responses. Handler
// errors and unknown routes are served through an ErrorCode so status codes
// and bodies stay uniform across handlers. The 405 answers of method
// dispatch and the bodiless 416 range refusals do not go through it.
package errcode

import (
	"fmt"
	"strings"
)

// ErrorCoder is the base interface for ErrorCode and Error allowing either
// to be used as an error.
type ErrorCoder interface {
	ErrorCode() ErrorCode
}

// ErrorCode represents the error type. The errors are serialized via strings
// and the integer format may change and should *never* be exported.
type ErrorCode int

var _ error = ErrorCode(0)

// ErrorCode just returns itself.
func (ec ErrorCode) ErrorCode() ErrorCode {
	return ec
}

// Error returns the ID/Value.
func (ec ErrorCode) Error() string {
	return strings.ToLower(strings.ReplaceAll(ec.Descriptor().Value, "_", " "))
}

// Descriptor returns the descriptor for the error code.
func (ec ErrorCode) Descriptor() ErrorDescriptor {
	d, ok := errorCodeToDescriptors[ec]
	if !ok {
		return ErrorCodeUnknown.Descriptor()
	}
	return d
}

// String returns the canonical identifier for this error code.
func (ec ErrorCode) String() string {
	return ec.Descriptor().Value
}

// Message returns the message sent to clients for this error code.
func (ec ErrorCode) Message() string {
	return ec.Descriptor().Message
}

// WithMessage creates a new Error struct based on the passed-in info and
// overrides the Message property.
func (ec ErrorCode) WithMessage(message string) Error {
	return Error{
		Code:    ec,
		Message: message,
	}
}

// WithDetail creates a new Error struct based on the passed-in info and set
// the Detail property appropriately.
func (ec ErrorCode) WithDetail(detail any) Error {
	return Error{
		Code:    ec,
		Message: ec.Message(),
		Detail:  detail,
	}
}

// Error provides a wrapper around ErrorCode with extra information.
type Error struct {
	Code    ErrorCode
	Message string
	Detail  any
}

var _ error = Error{}

// ErrorCode returns the ID/Value of this Error.
func (e Error) ErrorCode() ErrorCode {
	return e.Code
}

// Error returns a human readable representation of the error.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.Error(), e.Message)
}

// ErrorDescriptor provides relevant information about a given error code.
type ErrorDescriptor struct {
	// Code is the error code that this descriptor describes.
	Code ErrorCode

	// Value provides a unique, string key, often in all caps with
	// underscores, to identify the error code.
	Value string

	// Message is the exact text clients receive in the error body.
	Message string

	// HTTPStatusCode is the status code that should be used when this
	// error is returned.
	HTTPStatusCode int
}
