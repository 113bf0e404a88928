// Package errors defines the failure taxonomy shared by the overlay's
// Spotify-facing components. Every boundary call converts its failures into a
// typed *Error so that nothing escapes as an uncaught panic; the UI renders
// the Detail string directly.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindAuth covers expired or invalid tokens and insufficient scopes.
	KindAuth Kind = iota
	// KindRateLimited is HTTP 429 from the Spotify API.
	KindRateLimited
	// KindAPI is any other non-success API status.
	KindAPI
	// KindNetwork covers DNS, connection and timeout failures.
	KindNetwork
	// KindParse is a malformed API response body.
	KindParse
	// KindNotAuthenticated is the local precondition: no access token held.
	KindNotAuthenticated
	// KindAuthCancelled means the user aborted the OAuth flow.
	KindAuthCancelled
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRateLimited:
		return "rate_limited"
	case KindAPI:
		return "api"
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindNotAuthenticated:
		return "not_authenticated"
	case KindAuthCancelled:
		return "auth_cancelled"
	default:
		return "unknown"
	}
}

// Error is a typed failure carrying display text for the UI.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is matches errors of the same kind, so sentinel comparisons work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New creates a typed error.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Newf creates a typed error with a formatted detail string.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// DisplayLimit is the maximum length of a failure reason shown in the
// overlay's secondary line.
const DisplayLimit = 30

// Truncate shortens a message for single-line display. Messages longer than
// max are cut and suffixed with an ellipsis.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
