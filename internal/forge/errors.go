package forge

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEndpoint returned when the endpoint is not an http(s) URL.
	ErrInvalidEndpoint = errors.New("forge: invalid endpoint")
	// ErrConnection returned when the endpoint cannot be reached.
	ErrConnection = errors.New("forge: connection failed")
	// ErrTimeout returned when a request exceeds its timeout.
	ErrTimeout = errors.New("forge: request timed out")
	// ErrStatus returned for non-2xx responses; see StatusError for the code.
	ErrStatus = errors.New("forge: unexpected status code")
	// ErrNoImage returned when the response carries no base64 image block.
	ErrNoImage = errors.New("forge: no image in response")
	// ErrDecode returned when the response or its image payload is malformed.
	ErrDecode = errors.New("forge: decode error")
	// ErrWrite returned when the image cannot be saved.
	ErrWrite = errors.New("forge: write error")
)

// StatusError carries the HTTP status of a rejected request.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %d", ErrStatus, e.Code)
	}
	return fmt.Sprintf("%v: %d: %s", ErrStatus, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// ItemError records why one texture of a batch failed.
type ItemError struct {
	Name string
	Err  error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }
