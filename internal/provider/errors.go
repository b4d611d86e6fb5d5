package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a provider failure for retry decisions.
type ErrorKind string

const (
	KindRateLimited  ErrorKind = "rate_limited"
	KindTimeout      ErrorKind = "timeout"
	KindAuth         ErrorKind = "auth"
	KindInvalidInput ErrorKind = "invalid_input"
	KindServerFault  ErrorKind = "server_fault"
)

// Error wraps a backend failure with its classification.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Recoverable reports whether err is worth retrying: rate limits, timeouts
// and server faults are transient; auth and input errors are permanent.
func Recoverable(err error) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Kind {
	case KindRateLimited, KindTimeout, KindServerFault:
		return true
	}
	return false
}

// classify maps a raw backend error onto an ErrorKind. The genai SDK
// surfaces HTTP failures as formatted messages, so matching is textual.
func classify(err error) *Error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded) || containsAny(msg, "timeout", "deadline exceeded"):
		return &Error{Kind: KindTimeout, Err: err}
	case containsAny(msg, "429", "quota", "RESOURCE_EXHAUSTED", "rate limit"):
		return &Error{Kind: KindRateLimited, Err: err}
	case containsAny(msg, "401", "403", "API key", "PERMISSION_DENIED", "UNAUTHENTICATED"):
		return &Error{Kind: KindAuth, Err: err}
	case containsAny(msg, "400", "INVALID_ARGUMENT", "unsupported"):
		return &Error{Kind: KindInvalidInput, Err: err}
	default:
		return &Error{Kind: KindServerFault, Err: err}
	}
}

func containsAny(msg string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
