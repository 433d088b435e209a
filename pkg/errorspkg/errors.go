// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrMalformedBody indicates a request body that could not be decoded.
	ErrMalformedBody = errors.New("malformed request body")
)
