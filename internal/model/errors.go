package model

import "errors"

// Stable error codes surfaced in tool results. The code prefixes the
// human-readable message so MCP clients can branch on failures without
// parsing prose.
const (
	CodeInvalidIntent      = "INVALID_INTENT"
	CodeAnchorNotFound     = "ANCHOR_NOT_FOUND"
	CodeInvalidRange       = "INVALID_RANGE"
	CodeDocNotFound        = "DOC_NOT_FOUND"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeStoreRejected      = "STORE_REJECTED"
	CodeUnsupportedFeature = "UNSUPPORTED_FEATURE"
	CodeAuthFailure        = "AUTH_FAILURE"
)

// AdapterError is the typed failure crossing the tool-invocation boundary.
// Every error leaving a handler is one of these; nothing is swallowed and
// nothing escapes untyped.
type AdapterError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AdapterError) Error() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Message
}

func (e *AdapterError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError builds an AdapterError without a cause.
func NewError(code, message string) *AdapterError {
	return &AdapterError{Code: code, Message: message}
}

// WrapError builds an AdapterError keeping the underlying cause for
// errors.Is/As inspection.
func WrapError(code, message string, cause error) *AdapterError {
	return &AdapterError{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the adapter error code, or empty string for foreign errors.
func CodeOf(err error) string {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
