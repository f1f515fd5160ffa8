package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed taxonomy of failures a tool invocation can produce.
// Backing-client faults are classified into one of these at the invoker
// boundary; nothing downstream needs to know the client library's own types.
type ErrorKind int

const (
	BackendError ErrorKind = iota
	UnknownTool
	MissingArgument
	AuthError
	NotFoundError
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownTool:
		return "UnknownTool"
	case MissingArgument:
		return "MissingArgument"
	case AuthError:
		return "AuthError"
	case NotFoundError:
		return "NotFoundError"
	}
	return "BackendError"
}

// ToolError carries a classified kind alongside the diagnostic text, which is
// preserved verbatim from whatever raised it.
type ToolError struct {
	Kind    ErrorKind
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (k ErrorKind) With(args ...any) *ToolError {
	return &ToolError{Kind: k, Message: fmt.Sprint(args...)}
}

func (k ErrorKind) Withf(format string, args ...any) *ToolError {
	return &ToolError{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// authHints and notFoundHints drive the best-effort classification of errors
// surfaced by the HTTP client. PostgREST reports auth failures with 401/403
// and JWT/api-key wording, and missing relations with 404 or Postgres error
// code 42P01 / PGRST205 in the response body.
var authHints = []string{
	"401", "403", "unauthorized", "forbidden", "jwt", "invalid api key",
	"permission denied",
}

var notFoundHints = []string{
	"404", "not found", "does not exist", "42p01", "pgrst205", "pgrst202",
}

// classifyError converts an arbitrary backing-client failure into a
// ToolError. Already-classified errors pass through unchanged.
func classifyError(err error) *ToolError {
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	if errors.Is(err, context.DeadlineExceeded) {
		return BackendError.With(msg)
	}
	for _, hint := range authHints {
		if strings.Contains(lower, hint) {
			return AuthError.With(msg)
		}
	}
	for _, hint := range notFoundHints {
		if strings.Contains(lower, hint) {
			return NotFoundError.With(msg)
		}
	}
	return BackendError.With(msg)
}
