package chainrpc

import (
	"errors"
	"fmt"
)

var (
	// ErrIDMismatch is returned when the response belongs to some other
	// request. Such response is never used, whatever it contains.
	ErrIDMismatch = errors.New("response id doesn't match request id")
	// ErrMissingID is returned for responses without an identifier.
	ErrMissingID = errors.New("response has no id")
	// ErrNoResult is returned for responses having neither result nor error.
	ErrNoResult = errors.New("no result returned")
)

// ServerError is the error string reported by the node in a well-formed
// response.
type ServerError struct {
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return e.Message
}

// RequestError wraps any failure of a single RPC call: transport problems,
// undecodable responses, identifier mismatches and errors returned by the
// node. It is the only error type the RPC client returns for remote calls.
type RequestError struct {
	Method string
	Err    error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Err)
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError wraps err for the given method.
func NewRequestError(method string, err error) *RequestError {
	return &RequestError{Method: method, Err: err}
}
