// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// AuthConfigError reports a missing or malformed API token. It is raised
// before any request is sent.
type AuthConfigError struct {
	Reason string
}

func (e *AuthConfigError) Error() string {
	return "ADS token configuration: " + e.Reason
}

// AuthError reports credentials rejected by the API (HTTP 401 or 403).
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("ADS rejected credentials (HTTP %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("ADS rejected credentials (HTTP %d)", e.StatusCode)
}

// TransientError reports a failure worth retrying later: network errors,
// rate limiting, and server-side or unexpected HTTP statuses.
type TransientError struct {
	// StatusCode is zero for network-level failures.
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("ADS request failed: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("ADS returned HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ADS returned HTTP %d", e.StatusCode)
}

func (e *TransientError) Unwrap() error { return e.Err }

// RateLimited reports whether the failure was an HTTP 429.
func (e *TransientError) RateLimited() bool {
	return e.StatusCode == 429
}

// NotFoundError reports a single-record lookup with no matching document.
type NotFoundError struct {
	Bibcode string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no paper found with bibcode %s", e.Bibcode)
}

// ValidationError reports a response document missing a mandatory field.
type ValidationError struct {
	Field string
	// Doc is a short description of the offending document for logs.
	Doc string
}

func (e *ValidationError) Error() string {
	if e.Doc == "" {
		return fmt.Sprintf("ADS document missing mandatory field %q", e.Field)
	}
	return fmt.Sprintf("ADS document missing mandatory field %q (%s)", e.Field, e.Doc)
}

// IsAuthConfig reports whether err is, or wraps, an AuthConfigError.
func IsAuthConfig(err error) bool {
	var target *AuthConfigError
	return errors.As(err, &target)
}

// IsAuth reports whether err is, or wraps, an AuthError.
func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

// IsTransient reports whether err is, or wraps, a TransientError.
func IsTransient(err error) bool {
	var target *TransientError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// truncateBody shortens an error body for inclusion in messages.
func truncateBody(b []byte) string {
	return truncate(strings.TrimSpace(string(b)), 200)
}

// truncate cuts s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
