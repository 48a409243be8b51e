package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParams     = errors.New("missing_params")
	ErrInvalidPayload    = errors.New("invalid_payload")
	ErrUnknownOriginDest = errors.New("unknown origin/dest")
	ErrUnknownAddress    = errors.New("unknown address")
	ErrUnknownArea       = errors.New("unknown_area")
	ErrUnknownAIEndpoint = errors.New("unknown_ai_endpoint")
	ErrInvalidStart      = errors.New("invalid_start")
)

// UpstreamError reports a failed or unusable response from a third-party API.
// Code is the client-facing error code (e.g. "geocode_failed").
type UpstreamError struct {
	Code     string
	Provider string
	Hint     string
	Raw      any
	Err      error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Code)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StatusError is a non-OK application status reported inside a 200 response,
// as the Google Maps web services do.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Status + " - " + e.Message
	}
	return e.Status
}
